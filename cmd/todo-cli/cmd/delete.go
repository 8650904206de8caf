package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tododapp/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a task",
	Long: `Delete the task at the given index from the ledger.

The pinned text stays on IPFS. The remaining tasks may be renumbered,
so list again before acting on another index.

Examples:
  todo-cli delete 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deleteCmd := commands.NewDeleteTaskCommand(GetRuntime().Controller, args[0])
		if err := deleteCmd.Validate(); err != nil {
			return err
		}
		if err := connect(ctx); err != nil {
			return err
		}

		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
