package output

import (
	"bytes"
	"encoding/json"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// JSONFormatter emits the refund result plus its advisory notes as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.RefundCalculationResult) ([]byte, error) {
	payload := struct {
		*domain.RefundCalculationResult
		TargetMonth string   `json:"targetMonth,omitempty"`
		Notes       []string `json:"notes"`
	}{RefundCalculationResult: r, Notes: RefundNotes(r)}
	if !r.TargetMonth.IsZero() {
		payload.TargetMonth = r.TargetMonth.Format("2006-01")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
