package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/observability"
	"github.com/matthias/jobad-composer/internal/types"
)

var resolveDutiesCommand = &cobra.Command{
	Use:   "resolve-duties",
	Short: "Resolve duties through the cascade and show the trace",
	Long: `Walks the duty cascade for a job title: explicit --duty values win,
otherwise seniority-filtered templates are retrieved from the knowledge
base, otherwise resolution is deferred to the drafting model. Prints the
resolved duties and the tier that produced them.`,
	RunE: runResolveDutiesCmd,
}

var (
	rdConfigPath string
	rdTitle      string
	rdLanguage   string
	rdSeniority  string
	rdDuties     []string
	rdVerbose    bool
)

func init() {
	resolveDutiesCommand.Flags().StringVar(&rdConfigPath, "config", "", "Path to config.json file")
	resolveDutiesCommand.Flags().StringVarP(&rdTitle, "title", "t", "", "Job title to resolve duties for (required)")
	resolveDutiesCommand.Flags().StringVarP(&rdLanguage, "language", "l", "de", "Output language: en or de")
	resolveDutiesCommand.Flags().StringVar(&rdSeniority, "seniority", "", "intern, junior, mid, senior, lead or principal")
	resolveDutiesCommand.Flags().StringArrayVar(&rdDuties, "duty", nil, "Explicit duty bullet (repeatable; skips retrieval)")
	resolveDutiesCommand.Flags().BoolVarP(&rdVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = resolveDutiesCommand.MarkFlagRequired("title")

	rootCmd.AddCommand(resolveDutiesCommand)
}

func runResolveDutiesCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(rdConfigPath, rdVerbose)
	if err != nil {
		return err
	}

	conns := connect(ctx, cfg, rdVerbose)
	defer conns.close()

	resolver := duties.NewResolver(nil)
	if conns.vectors != nil {
		resolver = duties.NewResolver(conns.vectors)
	}

	resolved, source, trace := resolver.ExplainResolve(ctx,
		splitList(rdDuties), rdTitle, types.Seniority(rdSeniority), types.Language(rdLanguage))

	fmt.Println(trace)
	observability.NewPrinter(os.Stdout).PrintDuties(resolved, string(source))
	return nil
}
