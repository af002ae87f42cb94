package command

import (
	"errors"
	"time"

	"GroupBank/internal/bank"
	"GroupBank/internal/policy"
)

// ErrGroupDisabled means the group has the daily-bonus feature switched off.
var ErrGroupDisabled = errors.New("group does not participate in daily bonus")

// BalanceInfo is the structured balance report; rendering happens elsewhere.
type BalanceInfo struct {
	Currency     int64
	Keys         int64
	Stamina      int
	ExtraStamina int
	TimeToFull   time.Duration
}

// ClaimResult is the structured outcome of a daily-bonus claim.
type ClaimResult struct {
	Base       int64
	Bonus      int64
	PoolRemain int64
}

// Handler orchestrates the registry, the daily cycle, and the group policy
// table. It holds no account state across calls.
type Handler struct {
	registry       *bank.Registry
	cycle          *bank.DailyCycle
	policy         *policy.Table
	initialBalance int64
}

func NewHandler(registry *bank.Registry, cycle *bank.DailyCycle, pol *policy.Table, initialBalance int64) *Handler {
	return &Handler{
		registry:       registry,
		cycle:          cycle,
		policy:         pol,
		initialBalance: initialBalance,
	}
}

// Register creates the account and returns its starting balance.
func (h *Handler) Register(id int64) (int64, error) {
	acct, err := h.registry.Register(id, h.initialBalance)
	if err != nil {
		return 0, err
	}
	return acct.Currency(), nil
}

// RegisterHint returns nil when the caller still needs to confirm with the
// full registration phrase, or ErrAlreadyRegistered.
func (h *Handler) RegisterHint(id int64) error {
	if _, ok := h.registry.Lookup(id); ok {
		return bank.ErrAlreadyRegistered
	}
	return nil
}

// Balance reports currency, keys, and the derived stamina state.
func (h *Handler) Balance(id int64) (BalanceInfo, error) {
	acct, ok := h.registry.Lookup(id)
	if !ok {
		return BalanceInfo{}, bank.ErrNotRegistered
	}

	stamina, extra, toFull := acct.Stamina()
	return BalanceInfo{
		Currency:     acct.Currency(),
		Keys:         acct.Keys(),
		Stamina:      stamina,
		ExtraStamina: extra,
		TimeToFull:   toFull,
	}, nil
}

// ClaimDaily hands out the daily bonus, gated on the group's daily flag,
// and adds the payout to the group's earnings tally.
func (h *Handler) ClaimDaily(id, group int64) (ClaimResult, error) {
	acct, ok := h.registry.Lookup(id)
	if !ok {
		return ClaimResult{}, bank.ErrNotRegistered
	}
	if !h.policy.Enabled(group, policy.FeatureDaily) {
		return ClaimResult{}, ErrGroupDisabled
	}

	base, bonus, remain, err := h.cycle.Claim(acct)
	if err != nil {
		return ClaimResult{}, err
	}

	h.policy.AddEarned(group, base+bonus)
	return ClaimResult{Base: base, Bonus: bonus, PoolRemain: remain}, nil
}
