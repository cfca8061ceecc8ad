package services

import (
	"fmt"
	"strings"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// BuildContext turns ranked retrieval results into one delimited text block
// for inclusion in a generation prompt. Pure function, no I/O.
func BuildContext(results []domain.SimilarityResult) string {
	parts := make([]string, 0, len(results))
	for i, res := range results {
		parts = append(parts, fmt.Sprintf("[Reference %d - %s]\n%s\n", i+1, res.FileName(), res.Excerpt(-1)))
	}
	return strings.Join(parts, "\n")
}

// BuildProposalPrompt assembles the generation prompt from the customer
// request, the retrieved context block and optional customer details.
func BuildProposalPrompt(query, context string, info domain.ContextInfo) string {
	var b strings.Builder

	b.WriteString(`You are an excellent sales representative. Using the reference material below, write a sales proposal tailored to the customer's needs.

[Customer Request]
`)
	b.WriteString(query)
	b.WriteString("\n\n[Reference Material]\n")
	b.WriteString(context)
	b.WriteString(`
[Requirements]
1. Identify the customer's problems and needs and present a solution for them
2. Make concrete suggestions that draw on the reference material
3. Keep the structure clear and persuasive
4. Include indicative pricing and an implementation schedule where appropriate

`)

	if !info.IsZero() {
		var details []string
		if info.CustomerName != "" {
			details = append(details, "Customer: "+info.CustomerName)
		}
		if info.Industry != "" {
			details = append(details, "Industry: "+info.Industry)
		}
		if info.Budget != "" {
			details = append(details, "Budget: "+info.Budget)
		}
		b.WriteString("[Customer Details]\n")
		b.WriteString(strings.Join(details, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("[Proposal]\n")
	return b.String()
}
