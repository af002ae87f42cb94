package store

import (
	"path/filepath"
	"testing"
	"time"

	"GroupBank/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_AccountRoundTrip(t *testing.T) {
	s := newTestSQLite(t)

	draw := time.Unix(1_700_000_000, 0)
	require.NoError(t, s.CreateAccount(&model.Account{ID: 7, Currency: 100}))
	require.NoError(t, s.CreateAccount(&model.Account{
		ID: 8, Currency: 5, Keys: 2, BoxesOpened: 9, LastDrawTime: draw,
	}))

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	byID := map[int64]model.Account{}
	for _, acct := range accounts {
		byID[acct.ID] = acct
	}

	assert.Equal(t, int64(100), byID[7].Currency)
	assert.True(t, byID[7].LastDrawTime.IsZero(), "zero draw time survives the round trip")

	assert.Equal(t, int64(5), byID[8].Currency)
	assert.Equal(t, int64(2), byID[8].Keys)
	assert.Equal(t, int64(9), byID[8].BoxesOpened)
	assert.True(t, byID[8].LastDrawTime.Equal(draw))
}

func TestSQLite_DuplicateInsertFails(t *testing.T) {
	s := newTestSQLite(t)

	require.NoError(t, s.CreateAccount(&model.Account{ID: 7}))
	assert.Error(t, s.CreateAccount(&model.Account{ID: 7}))
}

func TestSQLite_Updates(t *testing.T) {
	s := newTestSQLite(t)
	require.NoError(t, s.CreateAccount(&model.Account{ID: 7, Currency: 100}))

	draw := time.Unix(1_700_000_123, 0)
	require.NoError(t, s.SaveCurrency(7, 250))
	require.NoError(t, s.SaveKeys(7, 3))
	require.NoError(t, s.SaveBoxes(7, -2))
	require.NoError(t, s.SaveDrawTime(7, draw))

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	acct := accounts[0]
	assert.Equal(t, int64(250), acct.Currency)
	assert.Equal(t, int64(3), acct.Keys)
	assert.Equal(t, int64(-2), acct.BoxesOpened)
	assert.True(t, acct.LastDrawTime.Equal(draw))
}

func TestSQLite_DailyStateRoundTrip(t *testing.T) {
	s := newTestSQLite(t)

	st, err := s.LoadDailyState()
	require.NoError(t, err)
	assert.Nil(t, st, "no state saved yet")

	start := time.Unix(1_700_000_000, 0)
	require.NoError(t, s.SaveDailyState(&model.DailyState{
		StartTime: start, RemainingPool: 321, Carryover: 12,
	}))
	// Second save overwrites the single row.
	require.NoError(t, s.SaveDailyState(&model.DailyState{
		StartTime: start, RemainingPool: 300, Carryover: 12,
	}))

	st, err = s.LoadDailyState()
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.StartTime.Equal(start))
	assert.Equal(t, int64(300), st.RemainingPool)
	assert.Equal(t, int64(12), st.Carryover)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateAccount(&model.Account{ID: 7, Currency: 42}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(42), accounts[0].Currency)
}
