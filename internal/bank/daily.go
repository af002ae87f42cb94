package bank

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"GroupBank/internal/model"
	"GroupBank/internal/store"
)

// CycleSettings holds the daily-bonus parameters.
type CycleSettings struct {
	DailyBase    int64 // flat amount every claimant receives
	PoolBase     int64 // shared early-bird pool at each refresh
	EarlyBirdCap int64 // largest single early-bird draw
}

func DefaultCycleSettings() CycleSettings {
	return CycleSettings{DailyBase: 50, PoolBase: 500, EarlyBirdCap: 66}
}

// DailyCycle is the process-wide bonus period. Each account may claim once
// per cycle; earlier claimants share a depleting bonus pool. All mutation
// goes through the cycle mutex so the pool can never go negative or be
// double-decremented.
type DailyCycle struct {
	mu        sync.Mutex
	start     time.Time
	remaining int64
	carryover int64
	lastAuto  time.Time

	st  store.Store
	cfg CycleSettings
	rng *rand.Rand
}

// CycleSnapshot is a point-in-time copy for display and broadcast.
type CycleSnapshot struct {
	Start     time.Time
	Remaining int64
	Carryover int64
}

// NewDailyCycle creates the cycle. A nil rng gets a time-seeded source.
func NewDailyCycle(st store.Store, cfg CycleSettings, rng *rand.Rand) *DailyCycle {
	if rng == nil {
		rng = rand.New(rand.NewSource(timeNow().UnixNano()))
	}
	return &DailyCycle{st: st, cfg: cfg, rng: rng}
}

// Restore loads the persisted cycle state, or starts a fresh cycle silently
// when none has been saved yet.
func (d *DailyCycle) Restore() error {
	st, err := d.st.LoadDailyState()
	if err != nil {
		return fmt.Errorf("restore daily cycle: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if st == nil {
		d.start = timeNow()
		d.remaining = d.cfg.PoolBase
		d.persistLocked()
		log.Printf("[INFO] daily cycle initialized, pool %d", d.remaining)
		return nil
	}
	d.start = st.StartTime
	d.remaining = st.RemainingPool
	d.carryover = st.Carryover
	log.Printf("[INFO] daily cycle restored, started %s, pool %d", d.start.Format("2006-01-02 15:04"), d.remaining)
	return nil
}

// Advance starts a new cycle: the pool refills from the base amount plus
// whatever carried over, and the carry-over resets. The caller broadcasts
// the refresh to eligible groups.
func (d *DailyCycle) Advance(auto bool) CycleSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.start = timeNow()
	d.remaining = d.cfg.PoolBase + d.carryover
	d.carryover = 0
	if auto {
		d.lastAuto = d.start
	}
	d.persistLocked()
	return CycleSnapshot{Start: d.start, Remaining: d.remaining}
}

// Claim credits the flat daily amount plus an early-bird bonus drawn from
// the shared pool. A second claim in the same cycle fails with
// ErrAlreadyClaimed and never double-credits.
func (d *DailyCycle) Claim(acct *Account) (base, bonus, remain int64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if acct.LastDrawTime().After(d.start) {
		return 0, 0, d.remaining, ErrAlreadyClaimed
	}

	if d.remaining > 0 {
		max := d.cfg.EarlyBirdCap
		if d.remaining < max {
			max = d.remaining
		}
		bonus = 1 + d.rng.Int63n(max)
		d.remaining -= bonus
	}

	acct.ModifyCurrency(d.cfg.DailyBase + bonus)
	acct.SetLastDrawTime(timeNow())
	d.persistLocked()
	return d.cfg.DailyBase, bonus, d.remaining, nil
}

// AddCarryover accumulates bonus for the next cycle's pool.
func (d *DailyCycle) AddCarryover(n int64) {
	if n <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.carryover += n
	d.persistLocked()
}

// Snapshot returns a copy of the current cycle state.
func (d *DailyCycle) Snapshot() CycleSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return CycleSnapshot{Start: d.start, Remaining: d.remaining, Carryover: d.carryover}
}

// LastAutoAdvance reports when the scheduler last advanced the cycle.
func (d *DailyCycle) LastAutoAdvance() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastAuto
}

func (d *DailyCycle) persistLocked() {
	err := d.st.SaveDailyState(&model.DailyState{
		StartTime:     d.start,
		RemainingPool: d.remaining,
		Carryover:     d.carryover,
	})
	if err != nil {
		log.Printf("[ERROR] save daily state: %v", err)
	}
}
