package policy

import "testing"

func newTestTable() *Table {
	return New(map[int64]GroupRule{
		1: {Currency: true, Daily: true},
		2: {Currency: true, Daily: false},
		3: {Currency: false, Daily: false},
	}, GroupRule{})
}

func TestEnabled(t *testing.T) {
	table := newTestTable()

	tests := []struct {
		group   int64
		feature Feature
		want    bool
	}{
		{1, FeatureCurrency, true},
		{1, FeatureDaily, true},
		{2, FeatureCurrency, true},
		{2, FeatureDaily, false},
		{3, FeatureCurrency, false},
		{9, FeatureCurrency, false}, // unknown group, default off
	}
	for _, tt := range tests {
		if got := table.Enabled(tt.group, tt.feature); got != tt.want {
			t.Errorf("group %d feature %d: expected %v, got %v", tt.group, tt.feature, tt.want, got)
		}
	}
}

func TestEnabled_DefaultRule(t *testing.T) {
	table := New(nil, GroupRule{Currency: true, Daily: true})
	if !table.Enabled(42, FeatureCurrency) || !table.Enabled(42, FeatureDaily) {
		t.Error("expected default rule to apply to unknown groups")
	}
}

func TestEarned(t *testing.T) {
	table := newTestTable()

	table.AddEarned(1, 70)
	table.AddEarned(1, 30)
	if got := table.Earned(1); got != 100 {
		t.Errorf("expected 100 earned, got %d", got)
	}
	if got := table.Earned(2); got != 0 {
		t.Errorf("expected 0 earned, got %d", got)
	}

	// First sight of an unknown group creates it with the default rule.
	table.AddEarned(9, 5)
	if got := table.Earned(9); got != 5 {
		t.Errorf("expected 5 earned, got %d", got)
	}
	if table.Enabled(9, FeatureCurrency) {
		t.Error("lazily created group should use the default rule")
	}
}

func TestEnabledGroups(t *testing.T) {
	table := newTestTable()

	daily := table.EnabledGroups(FeatureDaily)
	if len(daily) != 1 || daily[0] != 1 {
		t.Errorf("expected [1], got %v", daily)
	}

	currency := table.EnabledGroups(FeatureCurrency)
	if len(currency) != 2 {
		t.Errorf("expected 2 currency groups, got %v", currency)
	}
}
