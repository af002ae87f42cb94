package bank

import (
	"fmt"
	"log"
	"sync"
	"time"

	"GroupBank/internal/model"
	"GroupBank/internal/store"
)

// Account is the in-memory aggregate for one user. Durable fields are
// written through to the store on every mutation; a failed write is logged
// and the in-memory state stands (the store is a persistence cache, not a
// transactional source of truth). Stamina lives only in memory, derived
// from a single recovery timestamp.
type Account struct {
	mu   sync.Mutex
	data model.Account

	// recoveryTime is when stamina reaches MaxStamina. It may be arbitrarily
	// far in the past; current stamina is always derived, never stored.
	recoveryTime time.Time
	extraStamina int

	st  store.Store
	cfg *Settings
}

func newAccount(data model.Account, st store.Store, cfg *Settings) *Account {
	return &Account{
		data:         data,
		recoveryTime: timeNow(),
		st:           st,
		cfg:          cfg,
	}
}

func (a *Account) ID() int64 { return a.data.ID }

func (a *Account) Currency() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data.Currency
}

func (a *Account) Keys() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data.Keys
}

func (a *Account) BoxesOpened() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data.BoxesOpened
}

func (a *Account) LastDrawTime() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data.LastDrawTime
}

// Stamina reports current base stamina, the extra pool, and time to full.
func (a *Account) Stamina() (stamina, extra int, toFull time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := timeNow()
	return staminaAt(a.recoveryTime, now, *a.cfg), a.extraStamina, timeToFull(a.recoveryTime, now)
}

// ConsumeStamina satisfies cost from the extra pool first, then from base
// stamina. It fails without mutating when the combined pools cannot cover
// the cost. Consuming from base pushes the recovery timestamp forward;
// deficits accumulate additively and never reset.
func (a *Account) ConsumeStamina(cost int) (model.StaminaStatus, error) {
	if cost <= 0 {
		return model.StaminaStatus{}, fmt.Errorf("stamina cost must be positive, got %d", cost)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := timeNow()
	base := staminaAt(a.recoveryTime, now, *a.cfg)

	if a.extraStamina+base < cost {
		return model.StaminaStatus{Stamina: base, TimeToFull: timeToFull(a.recoveryTime, now)},
			ErrInsufficientStamina
	}

	fromExtra := cost
	if fromExtra > a.extraStamina {
		fromExtra = a.extraStamina
	}
	fromBase := cost - fromExtra
	a.extraStamina -= fromExtra

	newBase := base - fromBase
	if a.recoveryTime.After(now) {
		a.recoveryTime = a.recoveryTime.Add(time.Duration(fromBase) * a.cfg.RegenInterval)
	} else {
		a.recoveryTime = now.Add(time.Duration(fromBase) * a.cfg.RegenInterval)
	}
	if newBase >= a.cfg.MaxStamina {
		a.recoveryTime = now
	}

	return model.StaminaStatus{Enough: true, Stamina: newBase, TimeToFull: timeToFull(a.recoveryTime, now)}, nil
}

// TestStamina is a read-only projection of ConsumeStamina: it reports
// whether the cost could be paid and what the post-consume state would be,
// without mutating anything.
func (a *Account) TestStamina(cost int) model.StaminaStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := timeNow()
	base := staminaAt(a.recoveryTime, now, *a.cfg)

	if cost <= 0 || a.extraStamina+base < cost {
		return model.StaminaStatus{Stamina: base, TimeToFull: timeToFull(a.recoveryTime, now)}
	}

	fromBase := cost - a.extraStamina
	if fromBase < 0 {
		fromBase = 0
	}

	projected := a.recoveryTime
	if projected.After(now) {
		projected = projected.Add(time.Duration(fromBase) * a.cfg.RegenInterval)
	} else {
		projected = now.Add(time.Duration(fromBase) * a.cfg.RegenInterval)
	}
	newBase := base - fromBase
	if newBase >= a.cfg.MaxStamina {
		projected = now
	}

	return model.StaminaStatus{Enough: true, Stamina: newBase, TimeToFull: timeToFull(projected, now)}
}

// GrantStamina credits either the uncapped extra pool or base stamina.
// A base grant caps at MaxStamina and pulls the recovery timestamp
// backward, never earlier than now once stamina is full.
func (a *Account) GrantStamina(amount int, toExtra bool) (model.StaminaStatus, error) {
	if amount <= 0 {
		return model.StaminaStatus{}, fmt.Errorf("stamina grant must be positive, got %d", amount)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := timeNow()
	base := staminaAt(a.recoveryTime, now, *a.cfg)

	if toExtra {
		a.extraStamina += amount
		return model.StaminaStatus{Enough: true, Stamina: base, TimeToFull: timeToFull(a.recoveryTime, now)}, nil
	}

	newBase := base + amount
	if newBase > a.cfg.MaxStamina {
		newBase = a.cfg.MaxStamina
	}
	a.recoveryTime = a.recoveryTime.Add(-time.Duration(newBase-base) * a.cfg.RegenInterval)
	if newBase >= a.cfg.MaxStamina || !a.recoveryTime.After(now) {
		a.recoveryTime = now
	}

	return model.StaminaStatus{Enough: true, Stamina: newBase, TimeToFull: timeToFull(a.recoveryTime, now)}, nil
}

// ExtraStamina reports the extra pool alone.
func (a *Account) ExtraStamina() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.extraStamina
}

// ModifyCurrency adds delta, clamping at zero, and persists.
func (a *Account) ModifyCurrency(delta int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.Currency += delta
	if a.data.Currency < 0 {
		a.data.Currency = 0
	}
	a.persist("currency", a.st.SaveCurrency(a.data.ID, a.data.Currency))
	return a.data.Currency
}

// MultiplyCurrency scales the balance. Fractional results truncate toward
// zero, matching the historical integer semantics.
func (a *Account) MultiplyCurrency(factor float64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.Currency = int64(float64(a.data.Currency) * factor)
	if a.data.Currency < 0 {
		a.data.Currency = 0
	}
	a.persist("currency", a.st.SaveCurrency(a.data.ID, a.data.Currency))
	return a.data.Currency
}

// ModifyKeys adds delta, clamping at zero, and persists.
func (a *Account) ModifyKeys(delta int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.Keys += delta
	if a.data.Keys < 0 {
		a.data.Keys = 0
	}
	a.persist("keys", a.st.SaveKeys(a.data.ID, a.data.Keys))
	return a.data.Keys
}

// ModifyBoxes adds delta and persists. The counter only clamps at zero when
// Settings.ClampBoxCount is set.
func (a *Account) ModifyBoxes(delta int64) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.BoxesOpened += delta
	if a.cfg.ClampBoxCount && a.data.BoxesOpened < 0 {
		a.data.BoxesOpened = 0
	}
	a.persist("boxes", a.st.SaveBoxes(a.data.ID, a.data.BoxesOpened))
	return a.data.BoxesOpened
}

// SetLastDrawTime records the daily-bonus claim time and persists.
func (a *Account) SetLastDrawTime(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data.LastDrawTime = t
	a.persist("draw time", a.st.SaveDrawTime(a.data.ID, t))
}

func (a *Account) persist(what string, err error) {
	if err != nil {
		log.Printf("[ERROR] save %s for account %d: %v", what, a.data.ID, err)
	}
}
