package domain

import (
	"fmt"
	"strings"
	"time"
)

// Regime identifies an effective-date version of the parameter tables.
// Regimes are predefined; they are never created at runtime.
type Regime string

const (
	RegimeCurrent Regime = "current"
	Regime202608  Regime = "2026-08"
	Regime202708  Regime = "2027-08"
)

// AllRegimes lists regimes in effective-date order
var AllRegimes = []Regime{RegimeCurrent, Regime202608, Regime202708}

// EffectiveFrom returns the first day a regime applies. The current regime
// has no start date and returns the zero time.
func (r Regime) EffectiveFrom() time.Time {
	switch r {
	case Regime202608:
		return time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	case Regime202708:
		return time.Date(2027, time.August, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// Label returns the period heading shown for a regime
func (r Regime) Label() string {
	switch r {
	case RegimeCurrent:
		return "〜2026年7月"
	case Regime202608:
		return "2026年8月〜"
	case Regime202708:
		return "2027年8月〜"
	default:
		return string(r)
	}
}

// Subdivided reports whether categories are split into income tiers
func (r Regime) Subdivided() bool {
	return r == Regime202708
}

// Valid reports whether r is a known regime
func (r Regime) Valid() bool {
	for _, known := range AllRegimes {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRegime accepts the canonical names plus the Japanese era shorthands
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current", "現行", "":
		return RegimeCurrent, nil
	case "2026-08", "r8.8":
		return Regime202608, nil
	case "2027-08", "r9.8":
		return Regime202708, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
}

// RegimeForMonth returns the regime in force during the month containing t
func RegimeForMonth(t time.Time) Regime {
	month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	selected := RegimeCurrent
	for _, r := range AllRegimes {
		from := r.EffectiveFrom()
		if !from.IsZero() && !month.Before(from) {
			selected = r
		}
	}
	return selected
}
