package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tododapp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the path given by --config,
or to ` + config.DefaultPath() + `. An existing file is never overwritten.

Secrets such as the Pinata keys can stay out of the file and be set through
TODO_PINATA_API_KEY and TODO_PINATA_SECRET_KEY instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
