package ethereum

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"tododapp/internal/application"
)

// EIP-1193 provider error codes
const (
	codeUserRejected      = 4001
	codeUnauthorized      = 4100
	codeUnsupported       = 4200
	codeDisconnected      = 4900
	codeChainDisconnected = 4901
	codeUnrecognizedChain = 4902
	codeMethodNotFound    = -32601
)

// walletError translates an error returned by the wallet provider.
// op names the operation and decides how unknown JSON-RPC errors are classified.
func walletError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		if op == opRequestAccounts {
			return fmt.Errorf("%s: %w: %v", op, application.ErrWalletUnavailable, err)
		}
		return &application.NetworkError{Op: op, Err: err}
	}

	switch rpcErr.ErrorCode() {
	case codeUserRejected:
		return fmt.Errorf("%s: %w", op, application.ErrUserRejected)
	case codeUnauthorized, codeDisconnected, codeChainDisconnected:
		return fmt.Errorf("%s: %w: %s", op, application.ErrWalletUnavailable, rpcErr.Error())
	}

	switch op {
	case opSwitchChain:
		switch rpcErr.ErrorCode() {
		case codeUnrecognizedChain, codeUnsupported, codeMethodNotFound:
			return fmt.Errorf("%s: %w: %s", op, application.ErrSwitchUnsupported, rpcErr.Error())
		}
	case opSendTransaction:
		return &application.TransactionError{Reason: errorReason(err)}
	case opRequestAccounts:
		return fmt.Errorf("%s: %w: %s", op, application.ErrWalletUnavailable, rpcErr.Error())
	}
	return &application.NetworkError{Op: op, Err: err}
}

// errorReason prefers the revert message carried in the error data
func errorReason(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		switch data := dataErr.ErrorData().(type) {
		case string:
			if data != "" {
				return data
			}
		case map[string]interface{}:
			if msg, ok := data["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return err.Error()
}
