package domain

import (
	"errors"
	"fmt"
)

// Input-validity failures. They are deterministic, so callers should report
// them rather than retry.
var (
	ErrEmptyInput         = errors.New("no payments supplied")
	ErrNoEligiblePayments = errors.New("no payment reaches the 21,000 yen aggregation minimum")
	ErrInvalidIncome      = errors.New("income must be a positive finite number of man-yen")
)

// Table lookup failures.
var (
	ErrUnknownCategory       = errors.New("unknown category")
	ErrUnknownRegime         = errors.New("unknown regime")
	ErrTierRequired          = errors.New("regime subdivides categories; an income tier is required")
	ErrTierNotApplicable     = errors.New("regime does not subdivide categories into tiers")
	ErrParametersUnavailable = errors.New("no parameters published for this regime and category")
	ErrNoTiers               = errors.New("no income tiers defined")
)

// InputError is returned for structured, recoverable input problems.
// Kind is one of ErrEmptyInput, ErrNoEligiblePayments or ErrInvalidIncome.
type InputError struct {
	Kind   error
	Detail string
}

func (e *InputError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *InputError) Unwrap() error { return e.Kind }

// NewInputError wraps kind with a detail message
func NewInputError(kind error, detail string) *InputError {
	return &InputError{Kind: kind, Detail: detail}
}

// IsInputError reports whether err is an InputError of any kind
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
