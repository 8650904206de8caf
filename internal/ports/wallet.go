package ports

import "context"

// Wallet defines the interface for the user's wallet provider
type Wallet interface {
	// RequestAccounts asks the wallet for account access; may prompt the user
	RequestAccounts(ctx context.Context) ([]string, error)

	// ChainID returns the chain the wallet is currently connected to
	ChainID(ctx context.Context) (uint64, error)

	// SwitchChain asks the wallet to change networks; may prompt the user
	SwitchChain(ctx context.Context, chainID uint64) error

	// SubscribeAccounts delivers the selected account whenever it changes.
	// An empty string means no account is available. The channel closes when ctx ends
	// or the subscription drops.
	SubscribeAccounts(ctx context.Context) (<-chan string, error)
}
