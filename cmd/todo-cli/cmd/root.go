package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tododapp/internal/bootstrap"
	"tododapp/internal/config"
)

var (
	configPath  string
	networkName string
	verbose     bool
	rt          *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "todo-cli",
	Short: "CLI for the decentralized todo list",
	Long: `todo-cli manages a todo list whose tasks are recorded in a TodoList
contract and whose text is pinned to IPFS.

Every change is a transaction: your wallet asks you to approve it, and the
command waits for one confirmation before printing the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that do not talk to the chain
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "init" {
			return nil
		}
		if !verbose {
			log.SetOutput(io.Discard)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if networkName != "" {
			cfg.Network = networkName
		}

		rt, err = bootstrap.New(cmd.Context(), cfg, log.Default())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rt != nil {
			rt.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "network to use (localhost or sepolia)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wallet and ledger activity to stderr")
}

// GetRuntime returns the initialized runtime
func GetRuntime() *bootstrap.Runtime {
	return rt
}

// connect starts a wallet session; every task command needs one
func connect(ctx context.Context) error {
	res, err := GetRuntime().Connect(ctx)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintln(os.Stderr, res.Message)
	}
	return nil
}
