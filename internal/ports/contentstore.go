package ports

import "context"

// ContentStore defines the interface for the off-chain, content-addressed task store
type ContentStore interface {
	// Publish pins content and returns its content address.
	// Transport failures and non-success responses are reported as *application.NetworkError.
	Publish(ctx context.Context, content string) (string, error)

	// Fetch resolves a content address.
	// Every failure is reported as *application.FetchError so one bad address never aborts a batch.
	Fetch(ctx context.Context, address string) (string, error)
}
