package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// HTMLFormatter produces a standalone HTML refund report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/refund.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("refund").Funcs(template.FuncMap{
	"yen":      FormatYen,
	"pct":      FormatPercentage,
	"month":    FormatMonth,
	"formula":  FormatFormula,
	"bracket":  FormatBracket,
	"eligible": eligibilityLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.RefundCalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Result *domain.RefundCalculationResult
		Notes  []string
	}{r, RefundNotes(r)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
