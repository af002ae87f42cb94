package bank

import "time"

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// Settings holds the tunable economy parameters for accounts.
type Settings struct {
	MaxStamina    int
	RegenInterval time.Duration
	// ClampBoxCount floors the box counter at zero. The historical behavior
	// let it go negative, unlike currency and keys; keep false to match.
	ClampBoxCount bool
}

// DefaultSettings mirror the long-standing production values.
func DefaultSettings() Settings {
	return Settings{
		MaxStamina:    100,
		RegenInterval: 300 * time.Second,
	}
}

// staminaAt derives base stamina from the recovery timestamp. The timestamp
// is the moment stamina reaches MaxStamina; one unit regenerates every
// RegenInterval, so a partially elapsed interval counts as a missing unit.
func staminaAt(recovery, now time.Time, cfg Settings) int {
	if !recovery.After(now) {
		return cfg.MaxStamina
	}
	deficit := recovery.Sub(now)
	missing := int(deficit / cfg.RegenInterval)
	if deficit%cfg.RegenInterval != 0 {
		missing++
	}
	return cfg.MaxStamina - missing
}

// timeToFull is zero once the recovery timestamp is in the past.
func timeToFull(recovery, now time.Time) time.Duration {
	if d := recovery.Sub(now); d > 0 {
		return d
	}
	return 0
}
