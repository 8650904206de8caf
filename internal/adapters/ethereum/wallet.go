package ethereum

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"tododapp/internal/application"
	"tododapp/internal/ports"
)

const (
	opRequestAccounts = "request accounts"
	opChainID         = "chain id"
	opSwitchChain     = "switch network"
	opSendTransaction = "send transaction"
	opSubscribe       = "subscribe accounts"
)

// Wallet implements ports.Wallet against an EIP-1193 provider reachable over JSON-RPC
// (for example a Frame or Hardhat endpoint). It also signs and submits ledger transactions.
type Wallet struct {
	client *rpc.Client

	mu      sync.Mutex
	account common.Address
}

// Ensure Wallet implements Wallet
var _ ports.Wallet = (*Wallet)(nil)

type switchChainParams struct {
	ChainID hexutil.Uint64 `json:"chainId"`
}

type sendTxArgs struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

// DialWallet connects to the wallet provider at url.
// An empty url or an unreachable provider yields application.ErrWalletUnavailable.
func DialWallet(ctx context.Context, url string) (*Wallet, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: no wallet endpoint configured", application.ErrWalletUnavailable)
	}
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrWalletUnavailable, err)
	}
	return NewWallet(client), nil
}

// NewWallet wraps an existing RPC client
func NewWallet(client *rpc.Client) *Wallet {
	return &Wallet{client: client}
}

// Close releases the underlying connection
func (w *Wallet) Close() {
	w.client.Close()
}

// RequestAccounts asks the provider for account access and selects the first account
func (w *Wallet) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []common.Address
	if err := w.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, walletError(opRequestAccounts, err)
	}

	if len(accounts) > 0 {
		w.setAccount(accounts[0])
	}
	return hexAddresses(accounts), nil
}

// ChainID returns the provider's current chain
func (w *Wallet) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := w.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, walletError(opChainID, err)
	}
	return uint64(id), nil
}

// SwitchChain asks the provider to move to chainID
func (w *Wallet) SwitchChain(ctx context.Context, chainID uint64) error {
	params := switchChainParams{ChainID: hexutil.Uint64(chainID)}
	if err := w.client.CallContext(ctx, nil, "wallet_switchEthereumChain", params); err != nil {
		return walletError(opSwitchChain, err)
	}
	return nil
}

// SubscribeAccounts forwards the provider's accountsChanged notifications.
// Each notification is reduced to its first account, or "" when the list is empty.
func (w *Wallet) SubscribeAccounts(ctx context.Context) (<-chan string, error) {
	updates := make(chan []common.Address)
	sub, err := w.client.EthSubscribe(ctx, updates, "accountsChanged")
	if err != nil {
		if errors.Is(err, rpc.ErrNotificationsUnsupported) {
			return nil, fmt.Errorf("%s: provider does not push account changes: %w", opSubscribe, err)
		}
		return nil, walletError(opSubscribe, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		for {
			select {
			case accounts := <-updates:
				var selected string
				if len(accounts) > 0 {
					w.setAccount(accounts[0])
					selected = accounts[0].Hex()
				} else {
					w.setAccount(common.Address{})
				}
				select {
				case out <- selected:
				case <-ctx.Done():
					return
				}
			case <-sub.Err():
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// SendTransaction submits a contract call from the selected account.
// The provider signs it and may prompt the user.
func (w *Wallet) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	from, err := w.selectedAccount(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	var hash common.Hash
	args := sendTxArgs{From: from, To: to, Data: data}
	if err := w.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, walletError(opSendTransaction, err)
	}
	return hash, nil
}

func (w *Wallet) selectedAccount(ctx context.Context) (common.Address, error) {
	w.mu.Lock()
	account := w.account
	w.mu.Unlock()
	if account != (common.Address{}) {
		return account, nil
	}

	var accounts []common.Address
	if err := w.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return common.Address{}, walletError(opSendTransaction, err)
	}
	if len(accounts) == 0 {
		return common.Address{}, application.ErrNoSession
	}
	w.setAccount(accounts[0])
	return accounts[0], nil
}

func (w *Wallet) setAccount(account common.Address) {
	w.mu.Lock()
	w.account = account
	w.mu.Unlock()
}

func hexAddresses(accounts []common.Address) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.Hex()
	}
	return out
}
