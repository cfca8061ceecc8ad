package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/config/file"
	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// Seeding a config must work before services can be built, so this
	// subtree skips service initialisation.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := ConfigPath
		if path == "" {
			var err error
			if path, err = configfile.DefaultPath(); err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config %s already exists, use --force to overwrite", path)
		}

		if err := configfile.Save(path, domain.DefaultConfig()); err != nil {
			return err
		}
		cmd.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
