package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"tododapp/internal/application"
	"tododapp/internal/domain"
	"tododapp/internal/ports"
)

// DefaultConfirmInterval is how often Confirm polls for a receipt
const DefaultConfirmInterval = time.Second

// Backend is the read side of a node connection. *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Sender submits signed transactions. *Wallet satisfies it.
type Sender interface {
	SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error)
}

// Ledger implements ports.TaskLedger for the TodoList contract
type Ledger struct {
	backend         Backend
	sender          Sender
	address         common.Address
	confirmInterval time.Duration
}

// Ensure Ledger implements TaskLedger
var _ ports.TaskLedger = (*Ledger)(nil)

// NewLedger creates a ledger client for the contract at address
func NewLedger(backend Backend, sender Sender, address common.Address, confirmInterval time.Duration) *Ledger {
	if confirmInterval <= 0 {
		confirmInterval = DefaultConfirmInterval
	}
	return &Ledger{
		backend:         backend,
		sender:          sender,
		address:         address,
		confirmInterval: confirmInterval,
	}
}

// DialLedger connects to the node at rpcURL and returns a ledger client for contractAddress
func DialLedger(ctx context.Context, rpcURL, contractAddress string, sender Sender, confirmInterval time.Duration) (*Ledger, *ethclient.Client, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, nil, &application.ValidationError{
			Field:   "contract_address",
			Message: fmt.Sprintf("not a valid address: %q", contractAddress),
		}
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, &application.NetworkError{Op: "dial node", Err: err}
	}

	return NewLedger(client, sender, common.HexToAddress(contractAddress), confirmInterval), client, nil
}

// Address returns the contract address
func (l *Ledger) Address() common.Address {
	return l.address
}

// ChainID returns the chain the node serves
func (l *Ledger) ChainID(ctx context.Context) (uint64, error) {
	id, err := l.backend.ChainID(ctx)
	if err != nil {
		return 0, &application.NetworkError{Op: "chain id", Err: err}
	}
	return id.Uint64(), nil
}

// List reads every task in contract order
func (l *Ledger) List(ctx context.Context) ([]domain.Task, error) {
	input, err := todoList.Pack(methodGetAllTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", methodGetAllTasks, err)
	}

	output, err := l.backend.CallContract(ctx, ethereum.CallMsg{To: &l.address, Data: input}, nil)
	if err != nil {
		return nil, &application.NetworkError{Op: "list tasks", Err: err}
	}
	if len(output) == 0 {
		return nil, &application.NetworkError{
			Op:  "list tasks",
			Err: fmt.Errorf("no contract deployed at %s", l.address.Hex()),
		}
	}

	return decodeTasks(output)
}

func decodeTasks(output []byte) ([]domain.Task, error) {
	values, err := todoList.Unpack(methodGetAllTasks, output)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", methodGetAllTasks, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("failed to decode %s: expected 1 value, got %d", methodGetAllTasks, len(values))
	}

	raw := *abi.ConvertType(values[0], new([]contractTask)).(*[]contractTask)

	tasks := make([]domain.Task, len(raw))
	for i, t := range raw {
		tasks[i] = domain.Task{
			ContentAddress: t.IpfsHash,
			IsCompleted:    t.IsCompleted,
		}
		if t.CreatedAt != nil {
			tasks[i].CreatedAt = t.CreatedAt.Int64()
		}
	}
	return domain.IndexTasks(tasks), nil
}

// Create submits createTask(contentAddress)
func (l *Ledger) Create(ctx context.Context, contentAddress string) (domain.TxHandle, error) {
	return l.submit(ctx, methodCreateTask, contentAddress)
}

// Complete submits completeTask(index)
func (l *Ledger) Complete(ctx context.Context, index uint64) (domain.TxHandle, error) {
	return l.submit(ctx, methodCompleteTask, new(big.Int).SetUint64(index))
}

// Delete submits deleteTask(index)
func (l *Ledger) Delete(ctx context.Context, index uint64) (domain.TxHandle, error) {
	return l.submit(ctx, methodDeleteTask, new(big.Int).SetUint64(index))
}

func (l *Ledger) submit(ctx context.Context, method string, args ...interface{}) (domain.TxHandle, error) {
	if l.sender == nil {
		return "", application.ErrWalletUnavailable
	}

	data, err := todoList.Pack(method, args...)
	if err != nil {
		return "", fmt.Errorf("failed to pack %s: %w", method, err)
	}

	hash, err := l.sender.SendTransaction(ctx, l.address, data)
	if err != nil {
		return "", err
	}
	return domain.TxHandle(hash.Hex()), nil
}

// Confirm waits until the transaction is mined
func (l *Ledger) Confirm(ctx context.Context, tx domain.TxHandle) error {
	hash := common.HexToHash(tx.String())

	ticker := time.NewTicker(l.confirmInterval)
	defer ticker.Stop()

	for {
		receipt, err := l.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return &application.TransactionError{Tx: tx.String(), Reason: "execution reverted"}
			}
			return nil
		case errors.Is(err, ethereum.NotFound):
			// Not mined yet
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return &application.NetworkError{Op: "confirm " + tx.Short(), Err: err}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
