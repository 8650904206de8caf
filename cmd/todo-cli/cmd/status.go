package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tododapp/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallet session and network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r := GetRuntime()

		fmt.Printf("network:  %s (chain %d)\n", r.Network.Name, r.Network.ChainID)
		fmt.Printf("node:     %s\n", r.Network.RPCURL)
		fmt.Printf("contract: %s\n", r.Ledger.Address().Hex())
		if !r.WalletAvailable {
			fmt.Println("wallet:   not available")
			return nil
		}

		connectErr := connect(ctx)

		result, err := commands.NewStatusCommand(r.Sessions, r.Controller).Execute(ctx)
		if err != nil {
			return err
		}
		st := result.Session
		if st.Connected {
			fmt.Printf("account:  %s\n", st.Session.Account)
		} else {
			fmt.Println("account:  not connected")
		}
		if st.NetworkError != nil {
			fmt.Printf("network error: %v\n", st.NetworkError)
		}
		return connectErr
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
