package store

import (
	"fmt"
	"sync"
	"time"

	"GroupBank/internal/model"
)

// MemoryStore keeps everything in process memory. It backs tests and lets
// the bot run without a database path (nothing survives a restart).
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[int64]model.Account
	daily    *model.DailyState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[int64]model.Account)}
}

func (s *MemoryStore) CreateAccount(acct *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acct.ID]; ok {
		return fmt.Errorf("account %d already exists", acct.ID)
	}
	s.accounts[acct.ID] = *acct
	return nil
}

func (s *MemoryStore) LoadAccounts() ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]model.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func (s *MemoryStore) SaveCurrency(id, currency int64) error {
	return s.mutate(id, func(acct *model.Account) { acct.Currency = currency })
}

func (s *MemoryStore) SaveKeys(id, keys int64) error {
	return s.mutate(id, func(acct *model.Account) { acct.Keys = keys })
}

func (s *MemoryStore) SaveBoxes(id, boxes int64) error {
	return s.mutate(id, func(acct *model.Account) { acct.BoxesOpened = boxes })
}

func (s *MemoryStore) SaveDrawTime(id int64, t time.Time) error {
	return s.mutate(id, func(acct *model.Account) { acct.LastDrawTime = t })
}

func (s *MemoryStore) mutate(id int64, fn func(*model.Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("account %d not found", id)
	}
	fn(&acct)
	s.accounts[id] = acct
	return nil
}

func (s *MemoryStore) LoadDailyState() (*model.DailyState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.daily == nil {
		return nil, nil
	}
	st := *s.daily
	return &st, nil
}

func (s *MemoryStore) SaveDailyState(st *model.DailyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *st
	s.daily = &copied
	return nil
}

func (s *MemoryStore) Close() error { return nil }
