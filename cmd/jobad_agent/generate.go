package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/observability"
	"github.com/matthias/jobad-composer/internal/types"
	"github.com/matthias/jobad-composer/internal/workflow"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate a job advertisement end-to-end",
	Long: `Runs the full multi-expert workflow: style routing and company fetch in
parallel, concurrent candidate drafting, batched judge scoring, one
conditional refinement pass, and final curation.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runGenerateCmd,
}

var (
	genConfigPath  string
	genTitle       string
	genLanguage    string
	genFormality   string
	genCompanyType string
	genIndustry    string
	genSeniority   string
	genMinYears    int
	genMaxYears    int
	genSkills      []string
	genBenefits    []string
	genDuties      []string
	genCompanyName string
	genCompanyURLs []string
	genUserID      string
	genCandidates  int
	genJitter      float64
	genVerbose     bool
)

func init() {
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCommand.Flags().StringVarP(&genTitle, "title", "t", "", "Job title to generate for (required)")
	generateCommand.Flags().StringVarP(&genLanguage, "language", "l", "", "Output language: en or de")
	generateCommand.Flags().StringVar(&genFormality, "formality", "", "Register: casual, neutral or formal")
	generateCommand.Flags().StringVar(&genCompanyType, "company-type", "", "startup, scaleup, corporate, public_sector, agency or consulting")
	generateCommand.Flags().StringVar(&genIndustry, "industry", "", "generic, finance, healthcare, public_it, ai_startup, ecommerce or manufacturing")
	generateCommand.Flags().StringVar(&genSeniority, "seniority", "", "intern, junior, mid, senior, lead or principal")
	generateCommand.Flags().IntVar(&genMinYears, "min-years", 0, "Minimum years of experience")
	generateCommand.Flags().IntVar(&genMaxYears, "max-years", 0, "Maximum years of experience")
	generateCommand.Flags().StringArrayVar(&genSkills, "skill", nil, "Required skill as name[:category[:level]] (repeatable)")
	generateCommand.Flags().StringArrayVar(&genBenefits, "benefit", nil, "Benefit keyword (repeatable; empty uses industry defaults)")
	generateCommand.Flags().StringArrayVar(&genDuties, "duty", nil, "Duty bullet (repeatable; highest cascade tier)")
	generateCommand.Flags().StringVar(&genCompanyName, "company", "", "Company name for context retrieval")
	generateCommand.Flags().StringArrayVar(&genCompanyURLs, "company-url", nil, "Company page URL for context fetching (repeatable)")
	generateCommand.Flags().StringVarP(&genUserID, "user", "u", "", "User id scoping gold standards and feedback")
	generateCommand.Flags().IntVarP(&genCandidates, "candidates", "n", 0, "Number of candidates to draft (default 3)")
	generateCommand.Flags().Float64Var(&genJitter, "jitter", 0, "Temperature jitter step between candidates (default 0.1)")
	generateCommand.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = generateCommand.MarkFlagRequired("title")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(genConfigPath, genVerbose)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = genUserID
	}
	if cmd.Flags().Changed("candidates") {
		cfg.NumCandidates = genCandidates
	}
	if cmd.Flags().Changed("jitter") {
		cfg.JitterStep = genJitter
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	jobConfig := types.JobGenerationConfig{
		Language:        types.Language(genLanguage),
		Formality:       types.Formality(genFormality),
		CompanyType:     types.CompanyType(genCompanyType),
		Industry:        types.Industry(genIndustry),
		SeniorityLabel:  types.Seniority(genSeniority),
		Skills:          parseSkills(genSkills),
		BenefitKeywords: splitList(genBenefits),
		DutyKeywords:    splitList(genDuties),
	}
	if cmd.Flags().Changed("min-years") {
		jobConfig.MinYearsExperience = &genMinYears
	}
	if cmd.Flags().Changed("max-years") {
		jobConfig.MaxYearsExperience = &genMaxYears
	}
	if err := jobConfig.Validate(); err != nil {
		return fmt.Errorf("invalid generation parameters: %w", err)
	}

	conns := connect(ctx, cfg, cfg.Verbose)
	defer conns.close()

	engine, err := buildEngine(cfg, conns)
	if err != nil {
		return err
	}

	fmt.Printf("Generating job advertisement for: %s\n", genTitle)
	result, err := engine.Run(ctx, workflow.RunOptions{
		JobTitle:      genTitle,
		Config:        jobConfig,
		UserID:        cfg.UserID,
		CompanyName:   genCompanyName,
		CompanyURLs:   splitList(genCompanyURLs),
		NumCandidates: cfg.NumCandidates,
		JitterStep:    cfg.JitterStep,
		OnProgress: func(ev workflow.ProgressEvent) {
			fmt.Printf("  [%s] %s\n", ev.Node, ev.Message)
		},
	})
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintStyleProfile(result.StyleProfile)
		printer.PrintStyleKit(result.StyleKit)
		printer.PrintDuties(result.Duties, string(result.DutySource))
	}
	printer.PrintRanking(result.Ranking, result.ScoringUnavailable)
	printer.PrintJobBody(result.Winner)
	printer.PrintSwissReport(result.SwissReport)

	return nil
}
