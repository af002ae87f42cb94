package bank

import (
	"errors"
	"testing"
	"time"

	"GroupBank/internal/store"
)

// fixedClock pins timeNow for the duration of a test.
func fixedClock(t *testing.T, at time.Time) func(time.Time) {
	t.Helper()
	orig := timeNow
	current := at
	timeNow = func() time.Time { return current }
	t.Cleanup(func() { timeNow = orig })
	return func(next time.Time) { current = next }
}

func newTestAccount(t *testing.T, cfg Settings) *Account {
	t.Helper()
	r := NewRegistry(store.NewMemoryStore(), cfg)
	acct, err := r.Register(42, 100)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return acct
}

func TestConsumeStamina_Scenario(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())

	stamina, extra, toFull := acct.Stamina()
	if stamina != 100 || extra != 0 || toFull != 0 {
		t.Fatalf("fresh account: expected (100, 0, 0), got (%d, %d, %v)", stamina, extra, toFull)
	}

	status, err := acct.ConsumeStamina(40)
	if err != nil {
		t.Fatalf("consume 40: %v", err)
	}
	if status.Stamina != 60 {
		t.Errorf("expected 60 stamina after consume, got %d", status.Stamina)
	}
	if status.TimeToFull != 12000*time.Second {
		t.Errorf("expected 12000s to full, got %v", status.TimeToFull)
	}

	stamina, _, toFull = acct.Stamina()
	if stamina != 60 || toFull != 12000*time.Second {
		t.Errorf("expected (60, 12000s), got (%d, %v)", stamina, toFull)
	}
}

func TestConsumeStamina_DeficitsAccumulate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())

	if _, err := acct.ConsumeStamina(10); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	status, err := acct.ConsumeStamina(10)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if status.Stamina != 80 {
		t.Errorf("expected 80 stamina, got %d", status.Stamina)
	}
	if status.TimeToFull != 6000*time.Second {
		t.Errorf("expected 6000s to full, got %v", status.TimeToFull)
	}
}

func TestConsumeStamina_Insufficient(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())

	if _, err := acct.ConsumeStamina(101); !errors.Is(err, ErrInsufficientStamina) {
		t.Fatalf("expected ErrInsufficientStamina, got %v", err)
	}
	// No mutation on failure.
	stamina, extra, toFull := acct.Stamina()
	if stamina != 100 || extra != 0 || toFull != 0 {
		t.Errorf("failed consume mutated state: (%d, %d, %v)", stamina, extra, toFull)
	}
}

func TestConsumeStamina_RejectsNonPositiveCost(t *testing.T) {
	acct := newTestAccount(t, DefaultSettings())
	for _, cost := range []int{0, -5} {
		if _, err := acct.ConsumeStamina(cost); err == nil {
			t.Errorf("cost %d: expected error", cost)
		}
	}
}

func TestConsumeStamina_ExtraPoolFirst(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())
	if _, err := acct.GrantStamina(30, true); err != nil {
		t.Fatalf("grant extra: %v", err)
	}

	// 25 comes entirely out of the extra pool; base stays full.
	status, err := acct.ConsumeStamina(25)
	if err != nil {
		t.Fatalf("consume 25: %v", err)
	}
	if status.Stamina != 100 || status.TimeToFull != 0 {
		t.Errorf("expected base untouched, got (%d, %v)", status.Stamina, status.TimeToFull)
	}
	if acct.ExtraStamina() != 5 {
		t.Errorf("expected 5 extra left, got %d", acct.ExtraStamina())
	}

	// The next 10 takes the remaining 5 extra and 5 base.
	status, err = acct.ConsumeStamina(10)
	if err != nil {
		t.Fatalf("consume 10: %v", err)
	}
	if status.Stamina != 95 {
		t.Errorf("expected 95 base, got %d", status.Stamina)
	}
	if status.TimeToFull != 1500*time.Second {
		t.Errorf("expected 1500s to full, got %v", status.TimeToFull)
	}
	if acct.ExtraStamina() != 0 {
		t.Errorf("expected extra drained, got %d", acct.ExtraStamina())
	}
}

func TestTestStamina_MatchesConsume(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())

	projected := acct.TestStamina(40)
	consumed, err := acct.ConsumeStamina(40)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if projected != consumed {
		t.Errorf("projection %+v differs from consume result %+v", projected, consumed)
	}

	// After consuming, the same projection reflects the new state exactly.
	projected = acct.TestStamina(40)
	if !projected.Enough || projected.Stamina != 20 {
		t.Errorf("expected enough with 20 stamina, got %+v", projected)
	}

	// TestStamina never mutates.
	stamina, _, toFull := acct.Stamina()
	if stamina != 60 || toFull != 12000*time.Second {
		t.Errorf("TestStamina mutated state: (%d, %v)", stamina, toFull)
	}
}

func TestGrantStamina_RegenRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	advance := fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())

	if _, err := acct.ConsumeStamina(50); err != nil {
		t.Fatalf("consume: %v", err)
	}
	_, _, toFullBefore := acct.Stamina()

	// Grant 20 base, let the same 20 regenerate away, consume 20 again:
	// the clock ends up where it started.
	if _, err := acct.GrantStamina(20, false); err != nil {
		t.Fatalf("grant: %v", err)
	}
	advance(now.Add(20 * 300 * time.Second))
	if _, err := acct.ConsumeStamina(20); err != nil {
		t.Fatalf("re-consume: %v", err)
	}

	// Relative to the advanced clock, the deficit is the original one minus
	// the elapsed regeneration.
	_, _, toFullAfter := acct.Stamina()
	want := toFullBefore - 20*300*time.Second
	if toFullAfter != want {
		t.Errorf("expected %v to full, got %v", want, toFullAfter)
	}
}

func TestGrantStamina_BaseCapsAtMax(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fixedClock(t, now)

	acct := newTestAccount(t, DefaultSettings())
	if _, err := acct.ConsumeStamina(10); err != nil {
		t.Fatalf("consume: %v", err)
	}

	status, err := acct.GrantStamina(50, false)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if status.Stamina != 100 || status.TimeToFull != 0 {
		t.Errorf("expected full stamina, got (%d, %v)", status.Stamina, status.TimeToFull)
	}
}

func TestModifyCurrency_ClampsAtZero(t *testing.T) {
	acct := newTestAccount(t, DefaultSettings())

	if got := acct.ModifyCurrency(-500); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
	if got := acct.ModifyCurrency(30); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
}

func TestMultiplyCurrency_Truncates(t *testing.T) {
	acct := newTestAccount(t, DefaultSettings()) // starts at 100

	if got := acct.MultiplyCurrency(0.333); got != 33 {
		t.Errorf("expected truncation to 33, got %d", got)
	}
	if got := acct.MultiplyCurrency(-1); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestModifyKeys_ClampsAtZero(t *testing.T) {
	acct := newTestAccount(t, DefaultSettings())

	if got := acct.ModifyKeys(3); got != 3 {
		t.Errorf("expected 3 keys, got %d", got)
	}
	if got := acct.ModifyKeys(-10); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestModifyBoxes_ClampPolicy(t *testing.T) {
	// Historical behavior: the box counter may go negative.
	acct := newTestAccount(t, DefaultSettings())
	if got := acct.ModifyBoxes(-3); got != -3 {
		t.Errorf("unclamped: expected -3, got %d", got)
	}

	cfg := DefaultSettings()
	cfg.ClampBoxCount = true
	clamped := newTestAccount(t, cfg)
	if got := clamped.ModifyBoxes(-3); got != 0 {
		t.Errorf("clamped: expected 0, got %d", got)
	}
}
