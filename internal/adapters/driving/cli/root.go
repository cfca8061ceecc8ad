// Package cli implements the command-line surface over the driving ports.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driving"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Package-level services, wired by main through SetServices.
var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	proposalService driving.ProposalService
	documentService driving.DocumentService
)

// Services bundles the driving ports the CLI commands call.
type Services struct {
	Ingest   driving.IngestService
	Search   driving.SearchService
	Proposal driving.ProposalService
	Document driving.DocumentService
}

// SetServices wires the driving ports into the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	searchService = s.Search
	proposalService = s.Proposal
	documentService = s.Document
}

var verbose bool

// ConfigPath is the --config flag value, available once flags are parsed.
var ConfigPath string

// initServices is installed by main and builds the services after flags are
// parsed, so it sees --config and --verbose.
var initServices func() error

// OnInit registers the service initializer run before any command.
func OnInit(fn func() error) {
	initServices = fn
}

var rootCmd = &cobra.Command{
	Use:   "proposalcraft",
	Short: "Retrieval-backed sales proposal generation",
	Long: `proposalcraft ingests sales documents, retrieves the chunks most
relevant to a customer request and assembles them into a generated
proposal. It runs fully offline with deterministic fallbacks when no
external embedding or generation provider is configured.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if initServices != nil {
			return initServices()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "", "config file (default ~/.proposalcraft/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
