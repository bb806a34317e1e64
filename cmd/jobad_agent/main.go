// Package main provides the jobad_agent CLI: LLM-driven job advertisement
// generation with multi-expert drafting, judge-based ranking and Swiss
// German enforcement.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobad_agent",
	Short: "LLM-driven job advertisement generator",
	Long:  "jobad_agent drafts multiple job-description candidates in parallel, scores them with an automated judge, conditionally refines them from stored feedback, and selects a winner.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
