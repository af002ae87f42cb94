package bank

import (
	"fmt"
	"log"
	"sync"

	"GroupBank/internal/model"
	"GroupBank/internal/store"
)

// Registry owns every Account for the process lifetime. It is populated
// from the store at startup and is the single source of truth afterwards.
type Registry struct {
	mu       sync.RWMutex
	accounts map[int64]*Account
	st       store.Store
	cfg      Settings
}

func NewRegistry(st store.Store, cfg Settings) *Registry {
	return &Registry{
		accounts: make(map[int64]*Account),
		st:       st,
		cfg:      cfg,
	}
}

// Load populates the registry from the store. Malformed rows were already
// skipped by the store layer; a load failure aborts startup.
func (r *Registry) Load() error {
	rows, err := r.st.LoadAccounts()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.accounts[row.ID] = newAccount(row, r.st, &r.cfg)
	}
	log.Printf("[INFO] loaded %d accounts", len(r.accounts))
	return nil
}

// Lookup returns the account for id, if registered.
func (r *Registry) Lookup(id int64) (*Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[id]
	return acct, ok
}

// Register creates a new account with the given starting balance.
// Registration is all-or-nothing: if the durable insert fails, no in-memory
// account is created and the error is returned (not retried).
func (r *Registry) Register(id, initialBalance int64) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return nil, ErrAlreadyRegistered
	}

	row := model.Account{ID: id, Currency: initialBalance}
	if err := r.st.CreateAccount(&row); err != nil {
		return nil, fmt.Errorf("register account %d: %w", id, err)
	}

	acct := newAccount(row, r.st, &r.cfg)
	r.accounts[id] = acct
	return acct, nil
}

// Len reports the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
