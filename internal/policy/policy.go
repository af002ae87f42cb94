package policy

import "sync"

// Feature is a gated capability a group can opt in or out of.
type Feature int

const (
	// FeatureCurrency gates all currency commands in a group.
	FeatureCurrency Feature = iota
	// FeatureDaily gates daily-bonus claims and refresh broadcasts.
	FeatureDaily
)

// GroupRule is the per-group flag set.
type GroupRule struct {
	Currency bool
	Daily    bool
}

type groupState struct {
	rule   GroupRule
	earned int64
}

// Table holds the per-group policy flags plus a running tally of currency
// handed out in each group.
type Table struct {
	mu          sync.RWMutex
	groups      map[int64]*groupState
	defaultRule GroupRule
}

// New builds a table from explicit rules; unknown groups fall back to the
// default rule.
func New(rules map[int64]GroupRule, defaultRule GroupRule) *Table {
	groups := make(map[int64]*groupState, len(rules))
	for id, rule := range rules {
		groups[id] = &groupState{rule: rule}
	}
	return &Table{groups: groups, defaultRule: defaultRule}
}

// Enabled reports whether a feature is on for the group.
func (t *Table) Enabled(group int64, f Feature) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rule := t.defaultRule
	if gs, ok := t.groups[group]; ok {
		rule = gs.rule
	}
	switch f {
	case FeatureCurrency:
		return rule.Currency
	case FeatureDaily:
		return rule.Daily
	default:
		return false
	}
}

// AddEarned adds to the group's payout tally, creating the group with the
// default rule on first sight.
func (t *Table) AddEarned(group, amount int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gs, ok := t.groups[group]
	if !ok {
		gs = &groupState{rule: t.defaultRule}
		t.groups[group] = gs
	}
	gs.earned += amount
}

// Earned reports the group's payout tally.
func (t *Table) Earned(group int64) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if gs, ok := t.groups[group]; ok {
		return gs.earned
	}
	return 0
}

// EnabledGroups lists the known groups with the feature on, for broadcasts.
func (t *Table) EnabledGroups(f Feature) []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var ids []int64
	for id, gs := range t.groups {
		enabled := false
		switch f {
		case FeatureCurrency:
			enabled = gs.rule.Currency
		case FeatureDaily:
			enabled = gs.rule.Daily
		}
		if enabled {
			ids = append(ids, id)
		}
	}
	return ids
}
