package domain

import (
	"time"

	"github.com/rgehrsitz/kogaku/pkg/money"
)

// RegimeLimit is the ceiling picture for one regime in a side-by-side comparison
type RegimeLimit struct {
	Regime        Regime    `json:"regime"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
	// Available is false when no parameters are published for the category.
	Available      bool               `json:"available"`
	Tier           *IncomeTier        `json:"tier,omitempty"`
	Parameters     CategoryParameters `json:"parameters"`
	Limit          money.Yen          `json:"limit"`
	ManyTimesLimit money.Yen          `json:"manyTimesLimit"`
	AnnualCap      money.Yen          `json:"annualCap"`
}

// RegimeComparison holds one household's limits under every regime
type RegimeComparison struct {
	Income           *money.ManYen `json:"income,omitempty"`
	Category         CategoryCode  `json:"category"`
	TotalMedicalCost money.Yen     `json:"totalMedicalCost"`
	Regimes          []RegimeLimit `json:"regimes"`
}

// ForRegime returns the row for a regime, if present
func (c *RegimeComparison) ForRegime(r Regime) (RegimeLimit, bool) {
	for _, rl := range c.Regimes {
		if rl.Regime == r {
			return rl, true
		}
	}
	return RegimeLimit{}, false
}
