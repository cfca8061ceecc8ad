// Package template provides a deterministic proposal renderer used when no
// external generation provider is configured or the configured one fails.
package template

import (
	"fmt"
	"strings"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// excerptLimit bounds the reference excerpt shown per source.
const excerptLimit = 300

// solutionCatalog maps an industry (lowercased) to a canned solution focus.
// Unknown industries fall through to the generic entry.
var solutionCatalog = map[string]string{
	"manufacturing": "production-line digitalization, predictive maintenance, and supply-chain visibility",
	"retail":        "omnichannel customer engagement, inventory optimization, and demand forecasting",
	"finance":       "regulatory-compliant data management, fraud detection, and customer analytics",
	"healthcare":    "secure patient-data handling, workflow automation, and clinical reporting",
	"it":            "developer productivity tooling, infrastructure automation, and observability",
	"logistics":     "route optimization, shipment tracking, and warehouse automation",
	"education":     "learning management, student analytics, and administrative automation",
}

const genericSolution = "process automation, data-driven decision support, and operational visibility"

// Renderer builds a proposal document from retrieval hits without calling
// any external service. Its output is a pure function of its inputs.
type Renderer struct{}

// NewRenderer creates a template proposal renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces a structured proposal from the query, the customer context
// and the ranked retrieval results. It never fails; callers are expected to
// have verified results is non-empty.
func (r *Renderer) Render(query string, info domain.ContextInfo, results []domain.SimilarityResult) string {
	var b strings.Builder

	b.WriteString("# Sales Proposal\n\n")

	if !info.IsZero() {
		b.WriteString("## Customer Overview\n\n")
		if info.CustomerName != "" {
			fmt.Fprintf(&b, "- Customer: %s\n", info.CustomerName)
		}
		if info.Industry != "" {
			fmt.Fprintf(&b, "- Industry: %s\n", info.Industry)
		}
		if info.Budget != "" {
			fmt.Fprintf(&b, "- Budget: %s\n", info.Budget)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Understanding of Your Needs\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(query))

	b.WriteString("## Proposed Solution\n\n")
	fmt.Fprintf(&b, "We propose a solution focused on %s", r.solutionFor(info.Industry))
	if info.CustomerName != "" {
		fmt.Fprintf(&b, ", tailored to %s's environment", info.CustomerName)
	}
	b.WriteString(". The approach below draws on our track record in comparable engagements.\n\n")

	b.WriteString("## Supporting References\n\n")
	for i, res := range results {
		fmt.Fprintf(&b, "### Reference %d: %s (relevance %.2f)\n\n", i+1, res.FileName(), res.Score)
		excerpt := res.Excerpt(excerptLimit)
		if excerpt != "" {
			fmt.Fprintf(&b, "%s\n\n", excerpt)
		}
	}

	b.WriteString("## Next Steps\n\n")
	b.WriteString("1. Requirements workshop to confirm scope and success criteria\n")
	b.WriteString("2. Detailed proposal with pricing and a phased implementation schedule\n")
	if info.Budget != "" {
		fmt.Fprintf(&b, "3. Budget alignment against the indicated %s\n", info.Budget)
	} else {
		b.WriteString("3. Budget and resourcing discussion\n")
	}

	return b.String()
}

func (r *Renderer) solutionFor(industry string) string {
	if s, ok := solutionCatalog[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return s
	}
	return genericSolution
}
