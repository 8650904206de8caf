package domain

import "time"

// Session is the wallet connection a controller is synchronizing for
type Session struct {
	Account   string // Checksummed wallet address
	ChainID   uint64
	Network   string // Configured network name, e.g. "localhost"
	StartedAt time.Time
}

// ShortAccount returns an abbreviated account address, e.g. "0xf39F…2266"
func (s Session) ShortAccount() string {
	return TxHandle(s.Account).Short()
}
