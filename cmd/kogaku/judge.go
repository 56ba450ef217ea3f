package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/spf13/cobra"
)

func judgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Classify an annual income and compare the regimes' ceilings",
		Example: `  kogaku judge --income 600
  kogaku judge --income 600万円 --medical-cost 500000 --format csv
  kogaku judge --income 150 --tax-exempt --format xlsx --output judge.xlsx`,
		Args: cobra.NoArgs,
		RunE: runJudge,
	}
	cmd.Flags().String("income", "", "Annual income in man-yen (万円), e.g. 600")
	cmd.Flags().Bool("tax-exempt", false, "Household is exempt from residence tax (category オ)")
	cmd.Flags().String("medical-cost", "1000000", "Monthly total medical cost (10割) in yen the ceilings are evaluated at")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json, json-pretty, xlsx")
	cmd.Flags().StringP("output", "o", "", "Write the result to a file (required for xlsx)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func runJudge(cmd *cobra.Command, args []string) error {
	incomeStr, _ := cmd.Flags().GetString("income")
	taxExempt, _ := cmd.Flags().GetBool("tax-exempt")
	costStr, _ := cmd.Flags().GetString("medical-cost")
	format, _ := cmd.Flags().GetString("format")
	outputFile, _ := cmd.Flags().GetString("output")

	income, err := config.ParseIncome(incomeStr)
	if err != nil {
		return err
	}
	cost, err := config.ParseYen(costStr)
	if err != nil {
		return fmt.Errorf("invalid --medical-cost: %w", err)
	}

	engine, cleanup, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	set, err := compare.NewCompareEngine(engine).Compare(compare.CompareOptions{
		Income:           income,
		TaxExempt:        taxExempt,
		TotalMedicalCost: cost,
	})
	if err != nil {
		return err
	}
	if tablesFile, _ := cmd.Flags().GetString("tables"); tablesFile != "" {
		set.TablesSource = tablesFile
	}

	data, err := formatComparison(set, format)
	if err != nil {
		return err
	}
	binary := strings.EqualFold(format, "xlsx") || strings.EqualFold(format, "excel")
	return emit(cmd, data, outputFile, binary)
}

func formatComparison(set *compare.ComparisonSet, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "table", "text", "console":
		return []byte((&compare.TableFormatter{}).Format(set)), nil
	case "compact":
		return []byte((&compare.TableFormatter{}).FormatCompact(set)), nil
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(set)
		return []byte(s), err
	case "json":
		s, err := (&compare.JSONFormatter{}).Format(set)
		return []byte(s + "\n"), err
	case "json-pretty":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		return []byte(s + "\n"), err
	case "xlsx", "excel":
		return (&compare.XLSXFormatter{}).Format(set)
	}
	return nil, fmt.Errorf("unsupported format: %s (available: table, compact, csv, json, json-pretty, xlsx)", format)
}
