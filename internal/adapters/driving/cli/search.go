package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// searchExcerptLength bounds the excerpt shown per result.
const searchExcerptLength = 200

var (
	searchTopK     int
	searchJSON     bool
	searchIndustry string
	searchCustomer string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested documents",
	Long: `Embeds the query and returns the most similar stored chunks,
ranked by cosine similarity. Results can be narrowed with exact-match
metadata filters.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "only match chunks with this industry")
	searchCmd.Flags().StringVar(&searchCustomer, "customer", "", "only match chunks with this customer")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filter := map[string]string{}
	if searchIndustry != "" {
		filter["industry"] = searchIndustry
	}
	if searchCustomer != "" {
		filter["customer"] = searchCustomer
	}
	if len(filter) == 0 {
		filter = nil
	}

	results, err := searchService.Search(context.Background(), args[0], searchTopK, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SimilarityResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SimilarityResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, res := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, res.FileName(), res.Score)
		if excerpt := res.Excerpt(searchExcerptLength); excerpt != "" {
			cmd.Printf("      %s\n", excerpt)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d results\n", len(results))
	return nil
}
