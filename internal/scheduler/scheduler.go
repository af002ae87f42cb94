package scheduler

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"GroupBank/internal/bank"
	"GroupBank/internal/gateway"
	"GroupBank/internal/policy"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron entry that advances the daily cycle and
// broadcasts the refresh to eligible groups.
type Scheduler struct {
	Cron    *cron.Cron
	Cycle   *bank.DailyCycle
	Gateway *gateway.Client
	Policy  *policy.Table
	Ctx     context.Context

	rng *rand.Rand
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cycle *bank.DailyCycle, gw *gateway.Client, pol *policy.Table) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Cycle:   cycle,
		Gateway: gw,
		Policy:  pol,
		Ctx:     ctx,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Register adds the daily-advance entry.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, func() { s.advance(true) }); err != nil {
		return fmt.Errorf("register daily advance: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// AdvanceNow triggers the cycle advance manually (admin command or
// ADVANCE_ON_START).
func (s *Scheduler) AdvanceNow() {
	s.advance(false)
}

func (s *Scheduler) advance(auto bool) {
	snap := s.Cycle.Advance(auto)
	log.Printf("[INFO] daily cycle advanced (auto=%v), pool %d", auto, snap.Remaining)

	groups := s.Policy.EnabledGroups(policy.FeatureDaily)
	if len(groups) == 0 {
		return
	}
	s.Gateway.Broadcast(s.Ctx, gateway.RefreshLine(s.rng), groups)
}
