package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tododapp/internal/application/commands"
)

var completeCmd = &cobra.Command{
	Use:   "complete <index>",
	Short: "Mark a task complete",
	Long: `Mark the task at the given index complete.

Indices come from the latest list and may shift after a delete.

Examples:
  todo-cli complete 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		completeCmd := commands.NewCompleteTaskCommand(GetRuntime().Controller, args[0])
		if err := completeCmd.Validate(); err != nil {
			return err
		}
		if err := connect(ctx); err != nil {
			return err
		}

		result, err := completeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
