package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm/internal/config"
)

func (c *CLI) newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage run configuration",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	configCmd.AddCommand(c.newConfigInitCommand())
	return configCmd
}

func (c *CLI) newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Example: `  gsdmm config init
  gsdmm config init --config custom.yaml
  gsdmm config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultFile
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.Default().Write(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
