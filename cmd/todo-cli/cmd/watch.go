package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tododapp/internal/application/controller"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the task list whenever it changes",
	Long: `Keep a session open and print the task list every time the ledger
or the wallet account changes. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := connect(ctx); err != nil {
			return err
		}
		GetRuntime().Watch(ctx)

		ticker := time.NewTicker(GetRuntime().Config.Sync.PollInterval)
		defer ticker.Stop()

		var last string
		for {
			snap := GetRuntime().Controller.Snapshot()
			if key := snapshotKey(snap); key != last {
				last = key
				printSnapshot(snap)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// snapshotKey summarizes what watch prints, so unchanged state is skipped
func snapshotKey(snap controller.Snapshot) string {
	key := fmt.Sprintf("%t|%s|%s|", snap.Active, snap.Session.Account, snap.State)
	for _, tv := range snap.Tasks {
		key += fmt.Sprintf("%d:%s:%t:%d;", tv.Index, tv.ContentAddress, tv.IsCompleted, tv.ContentState)
	}
	return key
}

func printSnapshot(snap controller.Snapshot) {
	fmt.Printf("--- %s ---\n", time.Now().Format(time.TimeOnly))
	if !snap.Active {
		fmt.Println("not connected")
		return
	}
	if snap.Pending != nil {
		fmt.Printf("pending: %s (%s)\n", snap.Pending.Describe(), snap.State)
	}
	if len(snap.Tasks) == 0 {
		fmt.Println("No tasks.")
	}
	for _, tv := range snap.Tasks {
		printTask(tv)
	}
}
