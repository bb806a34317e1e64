package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthias/jobad-composer/internal/db"
)

var feedbackCommand = &cobra.Command{
	Use:   "feedback",
	Short: "Record or list feedback on generated job ads",
}

var feedbackAddCommand = &cobra.Command{
	Use:   "add",
	Short: "Record accepted, rejected or edited feedback",
	Long: `Stores one feedback record for a job title. Accepted ads become gold
standards and are used as few-shot examples in future drafts; rejected
and edited records ("gripes") make the next run refine every candidate.`,
	RunE: runFeedbackAddCmd,
}

var feedbackListCommand = &cobra.Command{
	Use:   "list",
	Short: "List stored gripes for a user",
	RunE:  runFeedbackListCmd,
}

var (
	fbConfigPath string
	fbUserID     string
	fbType       string
	fbTitle      string
	fbText       string
	fbBodyFile   string
	fbLimit      int
	fbVerbose    bool
)

func init() {
	for _, cmd := range []*cobra.Command{feedbackAddCommand, feedbackListCommand} {
		cmd.Flags().StringVar(&fbConfigPath, "config", "", "Path to config.json file")
		cmd.Flags().StringVarP(&fbUserID, "user", "u", "", "User id the feedback belongs to")
		cmd.Flags().BoolVarP(&fbVerbose, "verbose", "v", false, "Print detailed debug information")
	}

	feedbackAddCommand.Flags().StringVar(&fbType, "type", "", "accepted, rejected or edited (required)")
	feedbackAddCommand.Flags().StringVarP(&fbTitle, "title", "t", "", "Job title the feedback refers to (required)")
	feedbackAddCommand.Flags().StringVar(&fbText, "text", "", "Feedback text (what was wrong, or what was changed)")
	feedbackAddCommand.Flags().StringVar(&fbBodyFile, "body-file", "", "File with the job ad body JSON (required for accepted)")
	_ = feedbackAddCommand.MarkFlagRequired("type")
	_ = feedbackAddCommand.MarkFlagRequired("title")

	feedbackListCommand.Flags().IntVar(&fbLimit, "limit", 10, "Maximum number of records to list")

	feedbackCommand.AddCommand(feedbackAddCommand)
	feedbackCommand.AddCommand(feedbackListCommand)
	rootCmd.AddCommand(feedbackCommand)
}

func feedbackStore(ctx context.Context) (*clients, string, error) {
	cfg, err := loadCLIConfig(fbConfigPath, fbVerbose)
	if err != nil {
		return nil, "", err
	}
	if fbUserID != "" {
		cfg.UserID = fbUserID
	}
	if cfg.UserID == "" {
		return nil, "", fmt.Errorf("a user id is required (--user or config file)")
	}

	conns := connect(ctx, cfg, fbVerbose)
	if conns.store == nil {
		conns.close()
		return nil, "", fmt.Errorf("feedback requires a database connection (set %s)", "DATABASE_URL")
	}
	return conns, cfg.UserID, nil
}

func runFeedbackAddCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	kind := strings.ToLower(strings.TrimSpace(fbType))
	switch kind {
	case db.FeedbackAccepted, db.FeedbackRejected, db.FeedbackEdited:
	default:
		return fmt.Errorf("unknown feedback type %q (want accepted, rejected or edited)", fbType)
	}

	var body string
	if fbBodyFile != "" {
		data, err := os.ReadFile(fbBodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(data)
	}
	if kind == db.FeedbackAccepted && body == "" {
		return fmt.Errorf("accepted feedback needs --body-file with the job ad body")
	}

	conns, userID, err := feedbackStore(ctx)
	if err != nil {
		return err
	}
	defer conns.close()

	if kind == db.FeedbackAccepted {
		id, err := conns.store.SaveGoldStandard(ctx, userID, fbTitle, body, nil)
		if err != nil {
			return fmt.Errorf("failed to save gold standard: %w", err)
		}
		fmt.Printf("Saved gold standard #%d for %q\n", id, fbTitle)
		return nil
	}

	id, err := conns.store.SaveUserFeedback(ctx, userID, kind, fbText, fbTitle, body)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	fmt.Printf("Saved %s feedback #%d for %q\n", kind, id, fbTitle)
	return nil
}

func runFeedbackListCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	conns, userID, err := feedbackStore(ctx)
	if err != nil {
		return err
	}
	defer conns.close()

	gripes, err := conns.store.GetGripes(ctx, userID, fbLimit)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(gripes) == 0 {
		fmt.Println("No stored gripes.")
		return nil
	}

	for _, g := range gripes {
		fmt.Printf("#%d  [%s]  %s\n", g.ID, g.FeedbackType, g.JobTitle)
		if g.FeedbackText != "" {
			fmt.Printf("     %s\n", g.FeedbackText)
		}
	}
	return nil
}
