package store

import (
	"time"

	"GroupBank/internal/model"
)

// Store persists account rows and the daily-cycle state. Absence of an
// account row means the user is unregistered.
type Store interface {
	CreateAccount(acct *model.Account) error
	LoadAccounts() ([]model.Account, error)
	SaveCurrency(id, currency int64) error
	SaveKeys(id, keys int64) error
	SaveBoxes(id, boxes int64) error
	SaveDrawTime(id int64, t time.Time) error

	// LoadDailyState returns (nil, nil) when no state has been saved yet.
	LoadDailyState() (*model.DailyState, error)
	SaveDailyState(st *model.DailyState) error

	Close() error
}
