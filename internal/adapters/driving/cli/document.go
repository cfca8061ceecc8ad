package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, inspect or delete ingested documents and their stored chunks.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		if name, ok := docs[i].Metadata["file_name"].(string); ok {
			cmd.Printf("    File: %s\n", name)
		}
		if industry, ok := docs[i].Metadata["industry"].(string); ok && industry != "" {
			cmd.Printf("    Industry: %s\n", industry)
		}
		cmd.Printf("    Chunks: %d\n", docs[i].ChunkCount)
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("ID: %s\n", doc.ID)
	cmd.Printf("Path: %s\n", doc.Path)
	cmd.Printf("Chunks: %d\n", doc.ChunkCount)
	cmd.Printf("Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	if len(doc.Metadata) > 0 {
		cmd.Println("Metadata:")
		for k, v := range doc.Metadata {
			cmd.Printf("  %s: %v\n", k, v)
		}
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	removed, err := documentService.Delete(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if !removed {
		cmd.Printf("Document not found: %s\n", args[0])
		return nil
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
