package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/styling"
	"github.com/matthias/jobad-composer/internal/types"
)

var explainCommand = &cobra.Command{
	Use:   "explain",
	Short: "Explain style routing and temperature derivation",
	Long: `Prints the deterministic traces for a set of generation parameters:
which style color wins and why, and how the drafting temperature is
derived from company type, seniority and industry. No LLM calls are made.`,
	RunE: runExplainCmd,
}

var (
	explainLanguage    string
	explainFormality   string
	explainCompanyType string
	explainIndustry    string
	explainSeniority   string
)

func init() {
	explainCommand.Flags().StringVarP(&explainLanguage, "language", "l", "", "Output language: en or de")
	explainCommand.Flags().StringVar(&explainFormality, "formality", "", "Register: casual, neutral or formal")
	explainCommand.Flags().StringVar(&explainCompanyType, "company-type", "", "startup, scaleup, corporate, public_sector, agency or consulting")
	explainCommand.Flags().StringVar(&explainIndustry, "industry", "", "generic, finance, healthcare, public_it, ai_startup, ecommerce or manufacturing")
	explainCommand.Flags().StringVar(&explainSeniority, "seniority", "", "intern, junior, mid, senior, lead or principal")

	rootCmd.AddCommand(explainCommand)
}

func runExplainCmd(_ *cobra.Command, _ []string) error {
	cfg := types.JobGenerationConfig{
		Language:       types.Language(explainLanguage),
		Formality:      types.Formality(explainFormality),
		CompanyType:    types.CompanyType(explainCompanyType),
		Industry:       types.Industry(explainIndustry),
		SeniorityLabel: types.Seniority(explainSeniority),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid generation parameters: %w", err)
	}

	fmt.Println(styling.ExplainRoute(cfg))
	fmt.Println()
	fmt.Println(cfg.ExplainTemperature())
	return nil
}
