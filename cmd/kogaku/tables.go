package main

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print or export the parameter tables as YAML",
		Long: "Prints the parameter tables in use (the built-in ones, or those given with --tables). " +
			"An exported file can be edited and passed back with --tables.",
		Args: cobra.NoArgs,
		RunE: runTables,
	}
	cmd.Flags().String("regime", "", "Only print one regime: current, 2026-08 or 2027-08")
	cmd.Flags().String("export", "", "Write the complete tables to this file instead of printing")
	return cmd
}

func runTables(cmd *cobra.Command, args []string) error {
	engine, cleanup, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if exportFile, _ := cmd.Flags().GetString("export"); exportFile != "" {
		if err := config.NewInputParser().SaveTablesToFile(engine.Tables, exportFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tables written to %s\n", exportFile)
		return nil
	}

	doc := engine.Tables.Document()
	if cmd.Flags().Changed("regime") {
		raw, _ := cmd.Flags().GetString("regime")
		regime, err := domain.ParseRegime(raw)
		if err != nil {
			return err
		}
		var sections []domain.RegimeSection
		for _, s := range doc.Regimes {
			if s.Regime == regime {
				sections = append(sections, s)
			}
		}
		if len(sections) == 0 {
			return fmt.Errorf("%w: %s is not in the loaded tables", domain.ErrUnknownRegime, regime)
		}
		doc.Regimes = sections
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode tables: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request-file]",
		Short: "Validate a refund request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request file %s is valid (%s, %d payments)\n",
				args[0], req.Category.Description(), len(req.Payments))
			return nil
		},
	}
}
