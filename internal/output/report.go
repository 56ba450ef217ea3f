package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// GenerateReport renders result in the named format and writes it to w.
// Binary formats must go to a file; see WriteFormatted.
func GenerateReport(result *domain.RefundCalculationResult, format string, w io.Writer) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	if IsBinary(f) {
		return fmt.Errorf("format %s cannot be written to the terminal; use --output", f.Name())
	}

	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
