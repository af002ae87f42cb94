package gateway

import (
	"errors"
	"log"

	"GroupBank/internal/bank"
	"GroupBank/internal/command"
	"GroupBank/internal/policy"
)

// Dispatcher routes parsed commands into the handler and renders the typed
// results back into message chains.
type Dispatcher struct {
	handler    *command.Handler
	policy     *policy.Table
	maxStamina int
}

func NewDispatcher(handler *command.Handler, pol *policy.Table, maxStamina int) *Dispatcher {
	return &Dispatcher{handler: handler, policy: pol, maxStamina: maxStamina}
}

// Handle implements MessageHandler. Groups without the currency flag are
// ignored entirely, before any account state is touched.
func (d *Dispatcher) Handle(msg Incoming) []Segment {
	cmd := command.Parse(msg.Text)
	if cmd == command.CmdUnknown {
		return nil
	}
	if !d.policy.Enabled(msg.GroupID, policy.FeatureCurrency) {
		return nil
	}

	switch cmd {
	case command.CmdRegisterHint:
		if err := d.handler.RegisterHint(msg.SenderID); err != nil {
			return renderAlreadyRegistered(msg.SenderID)
		}
		return renderRegisterNotify()

	case command.CmdRegister:
		balance, err := d.handler.Register(msg.SenderID)
		switch {
		case errors.Is(err, bank.ErrAlreadyRegistered):
			return renderAlreadyRegistered(msg.SenderID)
		case err != nil:
			log.Printf("[ERROR] register %d: %v", msg.SenderID, err)
			return renderRegisterFail()
		}
		return renderRegistered(msg.SenderID, balance)

	case command.CmdBalance:
		info, err := d.handler.Balance(msg.SenderID)
		if errors.Is(err, bank.ErrNotRegistered) {
			return renderNotRegistered(msg.SenderID)
		}
		return renderBalance(msg.SenderID, info, d.maxStamina)

	case command.CmdClaimDaily:
		res, err := d.handler.ClaimDaily(msg.SenderID, msg.GroupID)
		switch {
		case errors.Is(err, bank.ErrNotRegistered):
			return renderNotRegistered(msg.SenderID)
		case errors.Is(err, command.ErrGroupDisabled):
			return renderGroupDisabled()
		case errors.Is(err, bank.ErrAlreadyClaimed):
			return renderAlreadyClaimed(msg.SenderID)
		}
		return renderClaim(msg.SenderID, res)
	}

	return nil
}
