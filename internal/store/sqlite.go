package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"GroupBank/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists accounts and daily-cycle state to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the bot can keep writing while external tools read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS account (
			id             INTEGER PRIMARY KEY NOT NULL,
			currency       INTEGER NOT NULL,
			boxes_opened   INTEGER NOT NULL,
			last_draw_time INTEGER NOT NULL,
			keys           INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS daily_state (
			id             INTEGER PRIMARY KEY CHECK (id = 1),
			start_time     INTEGER NOT NULL,
			remaining_pool INTEGER NOT NULL,
			carryover      INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) CreateAccount(acct *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO account (id, currency, boxes_opened, last_draw_time, keys)
		VALUES (?,?,?,?,?)`,
		acct.ID, acct.Currency, acct.BoxesOpened, unixOrZero(acct.LastDrawTime), acct.Keys,
	)
	if err != nil {
		return fmt.Errorf("insert account %d: %w", acct.ID, err)
	}
	return nil
}

// LoadAccounts reads every account row. A row that fails to scan is logged
// and skipped; startup continues with the rest.
func (s *SQLiteStore) LoadAccounts() ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, currency, boxes_opened, last_draw_time, keys FROM account`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var acct model.Account
		var drawUnix int64
		if err := rows.Scan(&acct.ID, &acct.Currency, &acct.BoxesOpened, &drawUnix, &acct.Keys); err != nil {
			log.Printf("[WARN] skipping malformed account row: %v", err)
			continue
		}
		if drawUnix > 0 {
			acct.LastDrawTime = time.Unix(drawUnix, 0)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (s *SQLiteStore) SaveCurrency(id, currency int64) error {
	return s.update(`UPDATE account SET currency=? WHERE id=?`, currency, id)
}

func (s *SQLiteStore) SaveKeys(id, keys int64) error {
	return s.update(`UPDATE account SET keys=? WHERE id=?`, keys, id)
}

func (s *SQLiteStore) SaveBoxes(id, boxes int64) error {
	return s.update(`UPDATE account SET boxes_opened=? WHERE id=?`, boxes, id)
}

func (s *SQLiteStore) SaveDrawTime(id int64, t time.Time) error {
	return s.update(`UPDATE account SET last_draw_time=? WHERE id=?`, unixOrZero(t), id)
}

func (s *SQLiteStore) update(query string, value, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(query, value, id); err != nil {
		return fmt.Errorf("update account %d: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) LoadDailyState() (*model.DailyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var startUnix, remaining, carryover int64
	err := s.db.QueryRow(`SELECT start_time, remaining_pool, carryover FROM daily_state WHERE id=1`).
		Scan(&startUnix, &remaining, &carryover)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query daily state: %w", err)
	}
	return &model.DailyState{
		StartTime:     time.Unix(startUnix, 0),
		RemainingPool: remaining,
		Carryover:     carryover,
	}, nil
}

func (s *SQLiteStore) SaveDailyState(st *model.DailyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO daily_state (id, start_time, remaining_pool, carryover)
		VALUES (1,?,?,?)
		ON CONFLICT(id) DO UPDATE SET start_time=excluded.start_time,
			remaining_pool=excluded.remaining_pool, carryover=excluded.carryover`,
		unixOrZero(st.StartTime), st.RemainingPool, st.Carryover,
	)
	if err != nil {
		return fmt.Errorf("save daily state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
