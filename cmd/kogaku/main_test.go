package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "kogaku", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "judge")
}

func TestCommandSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"judge", "refund", "tables", "validate", "version"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kogaku dev")
}

func TestJudgeCommand(t *testing.T) {
	out, err := execute(t, "judge", "--income", "600")
	require.NoError(t, err)
	assert.Contains(t, out, "判定区分: ウ（年収約370万円〜770万円）")
	assert.Contains(t, out, "87,430")
	assert.Contains(t, out, "現行との比較")

	out, err = execute(t, "judge", "--income", "６００万円", "--format", "compact")
	require.NoError(t, err)
	assert.Contains(t, out, "区分ウ 現行 87,430円")
}

func TestJudgeCommand_Formats(t *testing.T) {
	out, err := execute(t, "judge", "--income", "600", "--medical-cost", "500000", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "C", decoded["category"])

	out, err = execute(t, "judge", "--income", "150", "--tax-exempt", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Regime,Type,Category")

	_, err = execute(t, "judge", "--income", "600", "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")

	path := filepath.Join(t.TempDir(), "judge.xlsx")
	out, err = execute(t, "judge", "--income", "600", "--format", "xlsx", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"区分判定"}, f.GetSheetList())

	_, err = execute(t, "judge", "--income", "600", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestJudgeCommand_InvalidIncome(t *testing.T) {
	_, err := execute(t, "judge", "--income", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidIncome)

	_, err = execute(t, "judge")
	require.Error(t, err)
}

func TestRefundCommand_Flags(t *testing.T) {
	out, err := execute(t, "refund",
		"--category", "エ",
		"--month", "2026-09",
		"--payment", "大学病院=100000",
		"--format", "json")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "2026-08", decoded["regime"])
	assert.Equal(t, "38500", decoded["refund"])
	assert.Equal(t, "61500", decoded["selfPaymentLimit"])
	assert.Equal(t, "2026-09", decoded["targetMonth"])
}

func TestRefundCommand_IncomeOverridesFile(t *testing.T) {
	dir := t.TempDir()
	classified := filepath.Join(dir, "classified.yaml")
	require.NoError(t, os.WriteFile(classified, []byte("income: 300\npayments:\n  - label: 市民病院\n    amount: 100000\n"), 0644))
	named := filepath.Join(dir, "named.yaml")
	require.NoError(t, os.WriteFile(named, []byte("category: ウ\nincome: 300\npayments:\n  - amount: 100000\n"), 0644))

	decode := func(out string) map[string]interface{} {
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		return decoded
	}

	// A category classified from the file's income follows the new income.
	out, err := execute(t, "refund", classified, "--income", "1200", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "A", decode(out)["category"])

	out, err = execute(t, "refund", classified, "--income", "1200", "--month", "2027-10", "--format", "json")
	require.NoError(t, err)
	decoded := decode(out)
	assert.Equal(t, "A", decoded["category"])
	tier, ok := decoded["tier"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "A", tier["category"])

	// A category the file names explicitly is kept.
	out, err = execute(t, "refund", named, "--income", "1200", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "C", decode(out)["category"])

	// --category still wins over both.
	out, err = execute(t, "refund", classified, "--income", "1200", "--category", "イ", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "B", decode(out)["category"])
}

func TestRefundCommand_File(t *testing.T) {
	out, err := execute(t, "refund", "../../internal/config/testdata/request_income_only.yaml", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Refund,50170")
	assert.Contains(t, out, "Tier,C2")

	// Flags override the file.
	out, err = execute(t, "refund", "../../internal/config/testdata/request_c.yaml",
		"--payment", "市民病院=300000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Refund,212570")
}

func TestRefundCommand_Console(t *testing.T) {
	out, err := execute(t, "refund", "--income", "600", "--payment", "150000", "--payment", "8000")
	require.NoError(t, err)
	assert.Contains(t, out, "高額療養費 払い戻し額の目安")
	assert.Contains(t, out, "21,000円未満のため合算対象外です")
}

func TestRefundCommand_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refund.html")
	out, err := execute(t, "refund", "--category", "C", "--payment", "300000", "--format", "html", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")

	_, err = execute(t, "refund", "--category", "C", "--payment", "300000", "--format", "xlsx")
	require.Error(t, err)
}

func TestRefundCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		message string
	}{
		{"no category or income", []string{"refund", "--payment", "50000"}, nil, "either --category or --income is required"},
		{"no payments", []string{"refund", "--category", "C"}, domain.ErrEmptyInput, ""},
		{"only zero payments", []string{"refund", "--category", "C", "--payment", "0", "--payment", "病院=0"}, domain.ErrEmptyInput, ""},
		{"nothing eligible", []string{"refund", "--category", "C", "--payment", "20999"}, domain.ErrNoEligiblePayments, ""},
		{"tier needs income", []string{"refund", "--category", "C", "--month", "2027-08", "--payment", "100000"}, domain.ErrTierRequired, ""},
		{"tax-exempt after reform", []string{"refund", "--category", "オ", "--month", "2026-08", "--payment", "100000"}, domain.ErrParametersUnavailable, ""},
		{"bad month", []string{"refund", "--category", "C", "--month", "August", "--payment", "100000"}, nil, "August"},
		{"unknown category", []string{"refund", "--category", "Z", "--payment", "100000"}, domain.ErrUnknownCategory, ""},
		{"bad format", []string{"refund", "--category", "C", "--payment", "100000", "--format", "pdf"}, nil, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(domain.NewInputError(domain.ErrEmptyInput, "")))

	_, err := execute(t, "refund", "--category", "C", "--payment", "20999")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = execute(t, "refund", "--category", "C", "--payment", "100000", "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestRefundCommand_CustomTables(t *testing.T) {
	out, err := execute(t, "refund",
		"--tables", "../../internal/config/testdata/tables_custom.yaml",
		"--income", "180", "--month", "2027-09",
		"--payment", "100000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Tier,D1")
	assert.Contains(t, out, "Refund,38500")

	_, err = execute(t, "refund", "--tables", "../../internal/config/testdata/tables_gap.yaml",
		"--category", "C", "--payment", "100000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not contiguous")
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "regime: current")
	assert.Contains(t, out, "regime: 2027-08")

	out, err = execute(t, "tables", "--regime", "2026-08")
	require.NoError(t, err)
	assert.Contains(t, out, "regime: 2026-08")
	assert.NotContains(t, out, "regime: current")

	_, err = execute(t, "tables", "--regime", "2030-01")
	assert.ErrorIs(t, err, domain.ErrUnknownRegime)

	path := filepath.Join(t.TempDir(), "tables.yaml")
	_, err = execute(t, "tables", "--export", path)
	require.NoError(t, err)

	// An exported file loads back as a replacement table set.
	out, err = execute(t, "judge", "--income", "600", "--tables", path)
	require.NoError(t, err)
	assert.Contains(t, out, "87,430")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "../../internal/config/testdata/request_c.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "2 payments")

	_, err = execute(t, "validate", "missing.yaml")
	require.Error(t, err)

	_, err = execute(t, "validate")
	require.Error(t, err)
}
