package model

import "time"

// DailyState is the persisted daily-cycle row (single row table).
type DailyState struct {
	StartTime     time.Time
	RemainingPool int64
	Carryover     int64
}
