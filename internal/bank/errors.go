package bank

import "errors"

var (
	ErrAlreadyRegistered   = errors.New("account already registered")
	ErrNotRegistered       = errors.New("account not registered")
	ErrAlreadyClaimed      = errors.New("daily bonus already claimed this cycle")
	ErrInsufficientStamina = errors.New("insufficient stamina")
)
