package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/observability"
	"github.com/matthias/jobad-composer/internal/swissgerman"
	"github.com/matthias/jobad-composer/internal/types"
)

var swissCheckCommand = &cobra.Command{
	Use:   "swiss-check [text]",
	Short: "Check and normalize German text for Swiss conventions",
	Long: `Checks a German text for Swiss conventions: no Eszett, no German-German
vocabulary, consistent pronoun register. With --fix the normalized text
is printed; otherwise only the compliance report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSwissCheckCmd,
}

var (
	swissFile      string
	swissFormality string
	swissFix       bool
)

func init() {
	swissCheckCommand.Flags().StringVarP(&swissFile, "file", "f", "", "Read the text from a file instead of an argument")
	swissCheckCommand.Flags().StringVar(&swissFormality, "formality", "neutral", "Register the pronoun check expects: casual, neutral or formal")
	swissCheckCommand.Flags().BoolVar(&swissFix, "fix", false, "Print the text with Eszett and vocabulary replacements applied")

	rootCmd.AddCommand(swissCheckCommand)
}

func runSwissCheckCmd(_ *cobra.Command, args []string) error {
	var text string
	switch {
	case swissFile != "":
		data, err := os.ReadFile(swissFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	default:
		return fmt.Errorf("provide the text as an argument or with --file")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input text is empty")
	}

	if swissFix {
		fmt.Println(swissgerman.Enforce(text))
	}

	report := swissgerman.CheckText(text, types.Formality(swissFormality))
	observability.NewPrinter(os.Stdout).PrintSwissReport(&report)

	if !report.Clean() {
		os.Exit(1)
	}
	return nil
}
