package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/internal/output"
	"github.com/spf13/cobra"
)

func refundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund [request-file]",
		Short: "Estimate the refund for one month of co-payments",
		Long: "Estimates the high-cost medical expense refund for one month. Payments are read " +
			"from a YAML request file, from --payment flags, or both; flags override the file.",
		Example: `  kogaku refund --category ウ --payment 市民病院=50000 --payment 薬局=15000
  kogaku refund --income 600 --month 2027-10 --payment 150000
  kogaku refund request.yaml --format html --output refund.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRefund,
	}
	cmd.Flags().String("category", "", "Cost-sharing category: ア〜オ or A〜E")
	cmd.Flags().String("income", "", "Annual income in man-yen; classifies the category and selects the 2027-08 tier")
	cmd.Flags().String("month", "", "Target month (YYYY-MM); empty uses the current regime")
	cmd.Flags().Bool("many-times", false, "Apply the many-times (多数該当) ceiling")
	cmd.Flags().StringArrayP("payment", "p", nil, "Provider payment as label=amount or amount (repeatable)")
	cmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringP("output", "o", "", "Write the report to a file")
	return cmd
}

func runRefund(cmd *cobra.Command, args []string) error {
	req, err := buildRefundRequest(cmd, args)
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.Estimate(*req)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputFile, _ := cmd.Flags().GetString("output")

	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if outputFile != "" {
		path, err := output.WriteFormatted(f, result, outputFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}
	return output.GenerateReport(result, format, cmd.OutOrStdout())
}

// buildRefundRequest merges the optional request file with the flags
func buildRefundRequest(cmd *cobra.Command, args []string) (*domain.RefundRequest, error) {
	parser := config.NewInputParser()
	flags := cmd.Flags()

	req := &domain.RefundRequest{}
	if len(args) == 1 {
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		req = loaded
	}

	if flags.Changed("income") {
		raw, _ := flags.GetString("income")
		income, err := config.ParseIncome(raw)
		if err != nil {
			return nil, err
		}
		req.Income = &income
	}

	switch {
	case flags.Changed("category"):
		raw, _ := flags.GetString("category")
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		req.Category = category
		req.CategoryFromIncome = false
	case flags.Changed("income") && (req.Category == "" || req.CategoryFromIncome):
		req.Category = calculation.Classify(*req.Income)
		req.CategoryFromIncome = true
	case req.Category == "":
		return nil, fmt.Errorf("either --category or --income is required")
	}

	if flags.Changed("month") {
		raw, _ := flags.GetString("month")
		month, err := config.ParseMonth(raw)
		if err != nil {
			return nil, err
		}
		req.TargetMonth = month
	}
	if flags.Changed("many-times") {
		req.ManyTimes, _ = flags.GetBool("many-times")
	}
	if flags.Changed("payment") {
		raw, _ := flags.GetStringArray("payment")
		payments, err := config.ParsePayments(raw)
		if err != nil {
			return nil, err
		}
		req.Payments = payments
	}

	if err := parser.ValidateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// emit writes report bytes to a file or the command's output. Binary data
// is refused on the terminal.
func emit(cmd *cobra.Command, data []byte, outputFile string, binary bool) error {
	if outputFile == "" {
		if binary {
			return fmt.Errorf("binary output cannot be written to the terminal; use --output")
		}
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
	return nil
}
