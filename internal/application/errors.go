package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions surfaces need to tell apart
var (
	ErrWalletUnavailable = errors.New("no wallet available")
	ErrUserRejected      = errors.New("user rejected the request")
	ErrNetwork           = errors.New("network error")
	ErrFetch             = errors.New("content unavailable")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrSwitchUnsupported = errors.New("wallet cannot switch network")
	ErrBusy              = errors.New("another transaction is in progress")
	ErrNoSession         = errors.New("wallet not connected")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError represents a transport failure talking to the pinning service or an RPC endpoint
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: network error", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// FetchError represents content that could not be resolved from the content store
type FetchError struct {
	Address string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// TransactionError represents a ledger call that reverted or was mined with failure status
type TransactionError struct {
	Tx     string // Transaction hash, empty when the submission itself was refused
	Reason string
}

func (e *TransactionError) Error() string {
	if e.Tx == "" {
		return fmt.Sprintf("transaction failed: %s", e.Reason)
	}
	return fmt.Sprintf("transaction %s failed: %s", e.Tx, e.Reason)
}

func (e *TransactionError) Is(target error) bool {
	return target == ErrTransactionFailed
}

// Category groups errors into the banners a surface shows
type Category int

const (
	CategoryNone Category = iota
	CategoryWallet
	CategoryNetwork
	CategoryTransaction
	CategoryContent
	CategoryValidation
	CategoryBusy
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryWallet:
		return "wallet"
	case CategoryNetwork:
		return "network"
	case CategoryTransaction:
		return "transaction"
	case CategoryContent:
		return "content"
	case CategoryValidation:
		return "validation"
	case CategoryBusy:
		return "busy"
	default:
		return "other"
	}
}

// Categorize returns the banner category for an error.
// User rejections map to CategoryNone: they are never shown.
func Categorize(err error) Category {
	var valErr *ValidationError
	switch {
	case err == nil, errors.Is(err, ErrUserRejected):
		return CategoryNone
	case errors.Is(err, ErrWalletUnavailable), errors.Is(err, ErrNoSession):
		return CategoryWallet
	case errors.Is(err, ErrSwitchUnsupported), errors.Is(err, ErrNetwork):
		return CategoryNetwork
	case errors.Is(err, ErrTransactionFailed):
		return CategoryTransaction
	case errors.Is(err, ErrFetch):
		return CategoryContent
	case errors.As(err, &valErr):
		return CategoryValidation
	case errors.Is(err, ErrBusy):
		return CategoryBusy
	default:
		return CategoryOther
	}
}

// IsSessionFatal reports whether an error ends the whole session rather than one operation
func IsSessionFatal(err error) bool {
	return errors.Is(err, ErrWalletUnavailable)
}
