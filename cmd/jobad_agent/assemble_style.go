package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/observability"
	"github.com/matthias/jobad-composer/internal/styling"
	"github.com/matthias/jobad-composer/internal/types"
)

var assembleStyleCommand = &cobra.Command{
	Use:   "assemble-style",
	Short: "Route a style color and assemble its style kit",
	Long: `Runs the style router on the given parameters, assembles the matching
style kit (retrieved from the knowledge base when available, static
defaults otherwise) and prints it, optionally as the prompt block the
drafting model would receive.`,
	RunE: runAssembleStyleCmd,
}

var (
	asConfigPath  string
	asLanguage    string
	asFormality   string
	asCompanyType string
	asIndustry    string
	asSeniority   string
	asPromptBlock bool
	asVerbose     bool
)

func init() {
	assembleStyleCommand.Flags().StringVar(&asConfigPath, "config", "", "Path to config.json file")
	assembleStyleCommand.Flags().StringVarP(&asLanguage, "language", "l", "de", "Output language: en or de")
	assembleStyleCommand.Flags().StringVar(&asFormality, "formality", "", "Register: casual, neutral or formal")
	assembleStyleCommand.Flags().StringVar(&asCompanyType, "company-type", "", "startup, scaleup, corporate, public_sector, agency or consulting")
	assembleStyleCommand.Flags().StringVar(&asIndustry, "industry", "", "generic, finance, healthcare, public_it, ai_startup, ecommerce or manufacturing")
	assembleStyleCommand.Flags().StringVar(&asSeniority, "seniority", "", "intern, junior, mid, senior, lead or principal")
	assembleStyleCommand.Flags().BoolVar(&asPromptBlock, "prompt-block", false, "Print the rendered prompt block instead of the kit summary")
	assembleStyleCommand.Flags().BoolVarP(&asVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(assembleStyleCommand)
}

func runAssembleStyleCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jobCfg := types.JobGenerationConfig{
		Language:       types.Language(asLanguage),
		Formality:      types.Formality(asFormality),
		CompanyType:    types.CompanyType(asCompanyType),
		Industry:       types.Industry(asIndustry),
		SeniorityLabel: types.Seniority(asSeniority),
	}
	if err := jobCfg.Validate(); err != nil {
		return fmt.Errorf("invalid generation parameters: %w", err)
	}

	cfg, err := loadCLIConfig(asConfigPath, asVerbose)
	if err != nil {
		return err
	}

	conns := connect(ctx, cfg, asVerbose)
	defer conns.close()

	profile := styling.Route(jobCfg)
	assembler := styling.NewAssembler(nil)
	if conns.vectors != nil {
		assembler = styling.NewAssembler(conns.vectors)
	}
	kit := assembler.Assemble(ctx, profile, jobCfg.Language)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintStyleProfile(profile)
	if asPromptBlock {
		fmt.Println(kit.PromptBlock(jobCfg.Language))
		return nil
	}
	printer.PrintStyleKit(&kit)
	return nil
}
