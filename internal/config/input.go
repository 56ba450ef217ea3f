package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of refund request and parameter table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// requestFile is the YAML shape of a refund request. The target month is
// written as "YYYY-MM", which yaml.v3 cannot decode into time.Time directly.
type requestFile struct {
	Category    string                   `yaml:"category"`
	Income      *money.ManYen            `yaml:"income"`
	TargetMonth string                   `yaml:"target_month"`
	ManyTimes   bool                     `yaml:"many_times"`
	Payments    []domain.ProviderPayment `yaml:"payments"`
}

// LoadFromFile loads a refund request from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.RefundRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a refund request document
func (ip *InputParser) Parse(data []byte) (*domain.RefundRequest, error) {
	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	req := &domain.RefundRequest{
		Income:    file.Income,
		ManyTimes: file.ManyTimes,
		Payments:  file.Payments,
	}

	switch {
	case strings.TrimSpace(file.Category) != "":
		category, err := domain.ParseCategory(file.Category)
		if err != nil {
			return nil, err
		}
		req.Category = category
	case file.Income != nil:
		req.Category = calculation.Classify(*file.Income)
		req.CategoryFromIncome = true
	default:
		return nil, fmt.Errorf("either category or income is required")
	}

	month, err := ParseMonth(file.TargetMonth)
	if err != nil {
		return nil, err
	}
	req.TargetMonth = month

	for i := range req.Payments {
		if strings.TrimSpace(req.Payments[i].Label) == "" {
			req.Payments[i].Label = DefaultPaymentLabel(i)
		}
	}
	req.Payments = DropEmptyPayments(req.Payments)

	if err := ip.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return req, nil
}

// ValidateRequest checks a request before it reaches the engine. Payments
// below the aggregation minimum are not an error here; the engine reports
// them per row.
func (ip *InputParser) ValidateRequest(req *domain.RefundRequest) error {
	if !req.Category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, req.Category)
	}
	if req.Income != nil && !req.Income.IsPositive() {
		return domain.NewInputError(domain.ErrInvalidIncome, req.Income.String())
	}
	if len(req.Payments) == 0 {
		return domain.NewInputError(domain.ErrEmptyInput, "at least one payment is required")
	}
	for i, p := range req.Payments {
		if p.Amount.IsNegative() {
			return fmt.Errorf("payment %d (%s): amount cannot be negative", i+1, p.Label)
		}
	}
	if domain.RegimeForMonth(req.TargetMonth).Subdivided() && req.Income == nil {
		return fmt.Errorf("%w: income is required for months from %s",
			domain.ErrTierRequired, domain.Regime202708.EffectiveFrom().Format("2006-01"))
	}
	return nil
}

// DefaultPaymentLabel names an unlabeled payment by its 1-based position
func DefaultPaymentLabel(i int) string {
	return fmt.Sprintf("医療機関%d", i+1)
}
