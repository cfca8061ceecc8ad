package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

var (
	generateCustomer string
	generateIndustry string
	generateBudget   string
	generateTopK     int
	generateJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [request]",
	Short: "Generate a sales proposal",
	Long: `Retrieves the chunks most relevant to the customer request,
assembles them into a prompt and generates a proposal. When no external
generation provider is configured or it fails, a deterministic template
proposal is produced instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateCustomer, "customer", "", "customer name")
	generateCmd.Flags().StringVar(&generateIndustry, "industry", "", "customer industry")
	generateCmd.Flags().StringVar(&generateBudget, "budget", "", "stated budget")
	generateCmd.Flags().IntVarP(&generateTopK, "top-k", "n", 0, "retrieval depth (0 = configured default)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if proposalService == nil {
		return errors.New("proposal service not configured")
	}

	info := domain.ContextInfo{
		CustomerName: generateCustomer,
		Industry:     generateIndustry,
		Budget:       generateBudget,
	}

	result, err := proposalService.Generate(context.Background(), args[0], info, generateTopK)
	if err != nil {
		return fmt.Errorf("proposal generation failed: %w", err)
	}

	if generateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Status != domain.ProposalStatusSuccess {
		cmd.Printf("No proposal generated: %s\n", result.Message)
		return nil
	}

	cmd.Println(result.Proposal)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range result.Sources {
			cmd.Printf("  - %s (%s, %.3f)\n", src.FileName, src.ChunkID, src.RelevanceScore)
		}
	}
	return nil
}
