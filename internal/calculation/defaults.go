package calculation

import (
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

var onePercent = decimal.NewFromFloat(0.01)

// rated builds a row using the base + 1% excess formula
func rated(base, threshold, manyTimes, annualCap int64) domain.CategoryParameters {
	return domain.CategoryParameters{
		BaseAmount:      money.NewYen(base),
		Threshold:       money.NewYen(threshold),
		Rate:            onePercent,
		ManyTimesAmount: money.NewYen(manyTimes),
		AnnualCap:       money.NewYen(annualCap),
	}
}

// flat builds a row with a fixed ceiling
func flat(base, manyTimes, annualCap int64) domain.CategoryParameters {
	return domain.CategoryParameters{
		BaseAmount:      money.NewYen(base),
		Threshold:       money.ZeroYen(),
		Rate:            decimal.Zero,
		ManyTimesAmount: money.NewYen(manyTimes),
		AnnualCap:       money.NewYen(annualCap),
	}
}

func bound(v int64) *money.ManYen {
	m := money.NewManYenFromInt(v)
	return &m
}

func tier(c domain.CategoryCode, rank int, label string, lower, upper *money.ManYen, p domain.CategoryParameters) domain.IncomeTier {
	return domain.IncomeTier{
		Category:   c,
		Rank:       rank,
		RangeLabel: label,
		Lower:      lower,
		Upper:      upper,
		Parameters: p,
	}
}

// DefaultTablesDocument returns the published parameters for all three regimes.
//
// Thresholds for 2026-08 and 2027-08 are base / 0.3, the same construction
// the current regime uses (252,600 / 0.3 = 842,000).
func DefaultTablesDocument() domain.TablesDocument {
	return domain.TablesDocument{
		Metadata: domain.TablesMetadata{
			LastUpdated: "2025-12",
			Description: "高額療養費 自己負担限度額 (70歳未満)",
			Source:      "厚生労働省 高額療養費制度の見直し",
		},
		Regimes: []domain.RegimeSection{
			{
				Regime: domain.RegimeCurrent,
				Categories: map[domain.CategoryCode]domain.CategoryParameters{
					domain.CategoryAHigh:      rated(252600, 842000, 140100, 0),
					domain.CategoryB:          rated(167400, 558000, 93000, 0),
					domain.CategoryC:          rated(80100, 267000, 44400, 0),
					domain.CategoryDLow:       flat(57600, 44400, 0),
					domain.CategoryETaxExempt: flat(35400, 24600, 0),
				},
			},
			{
				Regime: domain.Regime202608,
				Categories: map[domain.CategoryCode]domain.CategoryParameters{
					domain.CategoryAHigh: rated(270300, 901000, 140100, 1680000),
					domain.CategoryB:     rated(179100, 597000, 93000, 1110000),
					domain.CategoryC:     rated(85800, 286000, 44400, 530000),
					domain.CategoryDLow:  flat(61500, 44400, 530000),
				},
			},
			{
				Regime: domain.Regime202708,
				Tiers: []domain.IncomeTier{
					tier(domain.CategoryAHigh, 1, "約1,160〜1,410万円", bound(1160), bound(1410), rated(270300, 901000, 140100, 1680000)),
					tier(domain.CategoryAHigh, 2, "約1,410〜1,650万円", bound(1410), bound(1650), rated(303000, 1010000, 140100, 1680000)),
					tier(domain.CategoryAHigh, 3, "約1,650万円超", bound(1650), nil, rated(342000, 1140000, 140100, 1680000)),

					tier(domain.CategoryB, 1, "約770〜950万円", bound(770), bound(950), rated(179100, 597000, 93000, 1110000)),
					tier(domain.CategoryB, 2, "約950〜1,040万円", bound(950), bound(1040), rated(194400, 648000, 93000, 1110000)),
					tier(domain.CategoryB, 3, "約1,040〜1,160万円", bound(1040), bound(1160), rated(209400, 698000, 93000, 1110000)),

					tier(domain.CategoryC, 1, "約370〜510万円", bound(370), bound(510), rated(85800, 286000, 44400, 530000)),
					tier(domain.CategoryC, 2, "約510〜650万円", bound(510), bound(650), rated(98100, 327000, 44400, 530000)),
					tier(domain.CategoryC, 3, "約650〜770万円", bound(650), bound(770), rated(110400, 368000, 44400, 530000)),

					tier(domain.CategoryDLow, 1, "〜約200万円", nil, bound(200), flat(61500, 34500, 410000)),
					tier(domain.CategoryDLow, 2, "約200〜260万円", bound(200), bound(260), flat(65400, 44400, 530000)),
					tier(domain.CategoryDLow, 3, "約260〜370万円", bound(260), bound(370), flat(69600, 44400, 530000)),
				},
			},
		},
	}
}

var defaultTables = mustTables(DefaultTablesDocument())

// DefaultTables returns the built-in parameter tables. They are built once
// per process and never mutated.
func DefaultTables() *domain.ParameterTables {
	return defaultTables
}

func mustTables(doc domain.TablesDocument) *domain.ParameterTables {
	t, err := domain.NewParameterTables(doc)
	if err != nil {
		panic(err)
	}
	return t
}
