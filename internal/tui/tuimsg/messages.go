// Package tuimsg defines the messages scenes send to the root model. It is
// separate from package tui so scenes can emit them without an import cycle.
package tuimsg

import (
	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/domain"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RefundRequestedMsg asks the root model to run a refund estimate
type RefundRequestedMsg struct {
	Request domain.RefundRequest
}

// RefundCompleteMsg carries a finished estimate
type RefundCompleteMsg struct {
	Result *domain.RefundCalculationResult
	Err    error
}

// ComparisonRequestedMsg asks the root model to classify an income and
// compare the regimes
type ComparisonRequestedMsg struct {
	Options compare.CompareOptions
}

// ComparisonCompleteMsg carries a finished regime comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ExportRequestedMsg asks the root model to write the current result to a
// file in the named output format
type ExportRequestedMsg struct {
	Format string
}

// ExportCompleteMsg reports where an export was written
type ExportCompleteMsg struct {
	Path string
	Err  error
}
