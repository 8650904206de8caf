package domain

// ContentState describes how far a content address has been resolved
type ContentState int

const (
	ContentLoading ContentState = iota
	ContentResolved
	ContentFailed
)

func (s ContentState) String() string {
	switch s {
	case ContentLoading:
		return "loading"
	case ContentResolved:
		return "resolved"
	case ContentFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// LoadingPlaceholder is displayed while content is being fetched
	LoadingPlaceholder = "Loading..."
	// ErrorPlaceholder is displayed when content could not be fetched
	ErrorPlaceholder = "Error loading content"
)

// ContentRecord is the cached resolution of one content address
type ContentRecord struct {
	State ContentState
	Text  string
	Err   error
}

// LoadingRecord returns a record for a fetch in progress
func LoadingRecord() ContentRecord {
	return ContentRecord{State: ContentLoading}
}

// ResolvedRecord returns a record holding known plaintext
func ResolvedRecord(text string) ContentRecord {
	return ContentRecord{State: ContentResolved, Text: text}
}

// FailedRecord returns a record for content that could not be fetched
func FailedRecord(err error) ContentRecord {
	return ContentRecord{State: ContentFailed, Err: err}
}

// Display returns the text to render for this record
func (r ContentRecord) Display() string {
	switch r.State {
	case ContentResolved:
		return r.Text
	case ContentFailed:
		return ErrorPlaceholder
	default:
		return LoadingPlaceholder
	}
}
