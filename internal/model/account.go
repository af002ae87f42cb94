package model

import "time"

// Account is the durable per-user resource row. Stamina state is runtime-only
// and intentionally not part of the row (see bank.Account).
type Account struct {
	ID           int64
	Currency     int64
	Keys         int64
	BoxesOpened  int64
	LastDrawTime time.Time // zero value = never claimed
}

// StaminaStatus is the result of a stamina query or mutation.
type StaminaStatus struct {
	Enough     bool
	Stamina    int
	TimeToFull time.Duration
}
