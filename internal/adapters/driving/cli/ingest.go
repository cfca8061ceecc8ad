package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nishiki-labs/proposalcraft/internal/normalisers/plaintext"
)

var (
	ingestCustomer string
	ingestIndustry string
	ingestDocType  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the index",
	Long: `Reads one or more plain text files, splits them into overlapping
chunks, embeds each chunk and stores the result for retrieval.
Re-ingesting a file with unchanged content replaces its chunks in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCustomer, "customer", "", "customer the document relates to")
	ingestCmd.Flags().StringVar(&ingestIndustry, "industry", "", "industry the document relates to")
	ingestCmd.Flags().StringVar(&ingestDocType, "type", "", "document type (e.g. case-study, pricing)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	reader := plaintext.New()
	ctx := context.Background()

	metadata := map[string]any{}
	if ingestCustomer != "" {
		metadata["customer"] = ingestCustomer
	}
	if ingestIndustry != "" {
		metadata["industry"] = ingestIndustry
	}
	if ingestDocType != "" {
		metadata["document_type"] = ingestDocType
	}

	for _, path := range args {
		doc, err := reader.Normalise(path, metadata)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		result, err := ingestService.Ingest(ctx, *doc)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("Ingested %s: document %s, %d chunks\n", path, result.DocID, result.ChunkCount)
	}

	return nil
}
