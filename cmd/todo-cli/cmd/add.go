package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tododapp/internal/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Long: `Pin the task text to IPFS and record its CID on the ledger.

Arguments are joined with spaces, so quoting is optional.

Examples:
  todo-cli add Buy milk
  todo-cli add "Call the plumber about the sink"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		createCmd := commands.NewCreateTaskCommand(GetRuntime().Controller, strings.Join(args, " "))
		if err := createCmd.Validate(); err != nil {
			return err
		}
		if err := connect(ctx); err != nil {
			return err
		}

		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
