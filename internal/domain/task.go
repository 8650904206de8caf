package domain

import "time"

// Task represents one entry of the on-chain todo list
type Task struct {
	Index          uint64 // Position in the ledger's latest enumeration
	ContentAddress string // IPFS CID of the pinned content, e.g. "bafkrei..."
	IsCompleted    bool
	CreatedAt      int64 // Unix seconds, set by the ledger
}

// CreatedTime returns the creation timestamp as a time.Time
func (t Task) CreatedTime() time.Time {
	return time.Unix(t.CreatedAt, 0)
}

// IndexTasks assigns positional indices to tasks as returned by the ledger.
// Indices are never carried over from an earlier listing.
func IndexTasks(tasks []Task) []Task {
	for i := range tasks {
		tasks[i].Index = uint64(i)
	}
	return tasks
}

// TxHandle identifies a submitted ledger transaction (the transaction hash)
type TxHandle string

func (h TxHandle) String() string {
	return string(h)
}

// Short returns an abbreviated form of the handle for display, e.g. "0x1234…abcd"
func (h TxHandle) Short() string {
	s := string(h)
	if len(s) <= 14 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
