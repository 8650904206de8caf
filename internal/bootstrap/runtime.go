// Package bootstrap assembles the adapters and application services shared by every binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/ethclient"

	"tododapp/internal/adapters/ethereum"
	"tododapp/internal/adapters/pinata"
	"tododapp/internal/application/commands"
	"tododapp/internal/application/controller"
	"tododapp/internal/application/session"
	"tododapp/internal/config"
	"tododapp/internal/domain"
	"tododapp/internal/ports"
)

// Runtime holds the wired services for one process
type Runtime struct {
	Config     *config.Config
	Network    domain.Network
	Store      *pinata.Client
	Ledger     *ethereum.Ledger
	Controller *controller.Controller
	Sessions   *session.Manager

	// WalletAvailable is false when no wallet endpoint could be reached;
	// the process still starts so surfaces can show the no-wallet notice
	WalletAvailable bool

	logger *log.Logger
	wallet *ethereum.Wallet
	node   *ethclient.Client
}

// New dials the node and the wallet and wires the controller to the session manager
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Runtime, error) {
	if logger == nil {
		logger = log.Default()
	}

	network, err := cfg.ResolveNetwork()
	if err != nil {
		return nil, err
	}
	address, err := cfg.ContractAddress()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:  cfg,
		Network: network,
		logger:  logger,
		Store: pinata.NewClient(pinata.Options{
			APIURL:     cfg.Pinata.APIURL,
			GatewayURL: cfg.Pinata.GatewayURL,
			APIKey:     cfg.Pinata.APIKey,
			SecretKey:  cfg.Pinata.SecretKey,
			Timeout:    cfg.Pinata.Timeout,
		}),
	}

	// Keep the interfaces nil rather than typed nil when there is no wallet
	var (
		wallet ports.Wallet
		sender ethereum.Sender
	)
	w, err := ethereum.DialWallet(ctx, cfg.WalletURL)
	if err != nil {
		logger.Printf("wallet: %v", err)
	} else {
		rt.wallet = w
		rt.WalletAvailable = true
		wallet, sender = w, w
	}

	ledger, node, err := ethereum.DialLedger(ctx, network.RPCURL, address, sender, cfg.Sync.ConfirmInterval)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Ledger = ledger
	rt.node = node

	rt.Controller = controller.New(ledger, rt.Store, controller.Options{
		PollInterval:     cfg.Sync.PollInterval,
		FetchConcurrency: cfg.Sync.FetchConcurrency,
		Logger:           logger,
	})
	rt.Sessions = session.NewManager(wallet, network, logger, rt.Controller)

	rt.checkNode(ctx)
	return rt, nil
}

// checkNode logs when the node serves a different chain than the configured network
func (r *Runtime) checkNode(ctx context.Context) {
	chainID, err := r.Ledger.ChainID(ctx)
	if err != nil {
		r.logger.Printf("node %s: %v", r.Network.RPCURL, err)
		return
	}
	if chainID != r.Network.ChainID {
		r.logger.Printf("node %s serves chain %d, %s expects %d", r.Network.RPCURL, chainID, r.Network.Name, r.Network.ChainID)
	}
}

// Connect starts a wallet session
func (r *Runtime) Connect(ctx context.Context) (*commands.ConnectResult, error) {
	return commands.NewConnectCommand(r.Sessions).Execute(ctx)
}

// Watch follows wallet account changes in the background until ctx ends
func (r *Runtime) Watch(ctx context.Context) {
	if !r.WalletAvailable {
		return
	}
	go func() {
		if err := r.Sessions.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Printf("account watch stopped: %v", err)
		}
	}()
}

// Close ends the session and releases connections
func (r *Runtime) Close() {
	if r.Sessions != nil {
		r.Sessions.Disconnect()
	}
	if r.wallet != nil {
		r.wallet.Close()
	}
	if r.node != nil {
		r.node.Close()
	}
}

// String describes the runtime for startup logs
func (r *Runtime) String() string {
	return fmt.Sprintf("network=%s chain=%d contract=%s wallet=%t",
		r.Network.Name, r.Network.ChainID, r.Ledger.Address().Hex(), r.WalletAvailable)
}
