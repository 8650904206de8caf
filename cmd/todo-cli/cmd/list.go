package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tododapp/internal/application/commands"
	"tododapp/internal/application/controller"
	"tododapp/internal/domain"
)

var listPending bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Long: `List the tasks of the connected wallet account.

Each line shows the task index, its state, the IPFS CID of its text and the
text itself. Use the index with complete and delete.

Examples:
  todo-cli list
  todo-cli list --pending
  todo-cli list --network sepolia`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := connect(ctx); err != nil {
			return err
		}

		listCmd := commands.NewListTasksCommand(GetRuntime().Controller, true)
		listCmd.Pending = listPending
		if _, err := listCmd.Execute(ctx); err != nil {
			return err
		}
		waitForContent(ctx, GetRuntime().Controller, 30*time.Second)

		result, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if len(result.Tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, tv := range result.Tasks {
			printTask(tv)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listPending, "pending", "p", false, "only list tasks that are not completed")
	rootCmd.AddCommand(listCmd)
}

// waitForContent waits until no task text is still loading. The background
// poller may own fetches a direct refresh does not wait for.
func waitForContent(ctx context.Context, sync commands.TaskSync, limit time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		loading := false
		for _, tv := range sync.Snapshot().Tasks {
			if tv.ContentState == domain.ContentLoading {
				loading = true
				break
			}
		}
		if !loading {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func printTask(tv controller.TaskView) {
	check := "[ ]"
	if tv.IsCompleted {
		check = "[x]"
	}
	fmt.Printf("%3d %s %s  %s\n", tv.Index, check, tv.Text, tv.ContentAddress)
}
