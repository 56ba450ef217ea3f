package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kogaku %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// newLogger builds the console logger the engine reports through. Logs go
// to stderr so they never mix with report output.
func newLogger(debugMode bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// newEngine builds a calculation engine from the --tables and --debug flags
func newEngine(cmd *cobra.Command) (*calculation.Engine, func(), error) {
	tablesFile, _ := cmd.Flags().GetString("tables")
	debugMode, _ := cmd.Flags().GetBool("debug")

	logger, err := newLogger(debugMode)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = logger.Sync() }

	engine := calculation.NewEngine()
	if tablesFile != "" {
		tables, err := config.NewInputParser().LoadTablesFromFile(tablesFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		engine = calculation.NewEngineWithTables(tables)
		logger.Debugf("loaded parameter tables from %s", tablesFile)
	}
	engine.SetLogger(logger)
	return engine, cleanup, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kogaku",
		Short: "High-cost medical expense refund calculator",
		Long: "Estimates reimbursements under Japan's high-cost medical expense benefit " +
			"(高額療養費制度), classifies incomes into cost-sharing categories and compares " +
			"the current ceilings with the scheduled 2026-08 and 2027-08 revisions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Log engine decisions to stderr")
	root.PersistentFlags().String("tables", "", "YAML parameter tables replacing the built-in ones")

	root.AddCommand(judgeCmd())
	root.AddCommand(refundCmd())
	root.AddCommand(tablesCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	return root
}

// exitCode maps a command error to the process exit status. Input errors
// exit with 2 so scripts can tell bad input from failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case domain.IsInputError(err):
		return 2
	default:
		return 1
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
