package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// Formatter defines a pluggable refund report formatter that returns a byte slice.
// Implementations are pure; writing the bytes is the caller's job.
type Formatter interface {
	Format(result *domain.RefundCalculationResult) ([]byte, error)
	// Name returns a short identifier, also used as the file extension.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.RefundCalculationResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.RefundCalculationResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                             { return ff.ID }

// WriteFormatted runs a formatter and writes the output to filename, or to a
// timestamped file in the working directory when filename is empty.
func WriteFormatted(f Formatter, result *domain.RefundCalculationResult, filename string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = fmt.Sprintf("kogaku_refund_%s.%s", time.Now().Format("20060102_150405"), f.Name())
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	HTMLFormatter{},
	JSONFormatter{},
	XLSXFormatter{},
}

// IsBinary reports whether a formatter's output should not be written to a terminal
func IsBinary(f Formatter) bool {
	return f.Name() == "xlsx"
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"excel":       "xlsx",
	"html-report": "html",
	"json-pretty": "json",
	"csv-summary": "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
