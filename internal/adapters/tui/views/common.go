package views

import (
	"errors"

	"tododapp/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as a one-line message. User rejections are not shown.
func (s *ViewState) SetError(err error) {
	if errors.Is(err, application.ErrUserRejected) {
		s.SetMessage("Request rejected in wallet", false)
		return
	}
	s.SetMessage(ErrorText(err), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// ErrorText phrases an error for a banner according to its category
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	switch application.Categorize(err) {
	case application.CategoryWallet:
		return "Wallet: " + err.Error()
	case application.CategoryNetwork:
		return "Network: " + err.Error()
	case application.CategoryTransaction:
		return "Transaction failed: " + transactionReason(err)
	case application.CategoryContent:
		return "Content unavailable: " + err.Error()
	case application.CategoryBusy:
		return "Another transaction is still in progress"
	default:
		return err.Error()
	}
}

func transactionReason(err error) string {
	var txErr *application.TransactionError
	if errors.As(err, &txErr) {
		return txErr.Reason
	}
	return err.Error()
}
