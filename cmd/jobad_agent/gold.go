package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var goldCommand = &cobra.Command{
	Use:   "gold",
	Short: "Manage gold standard job ads",
}

var goldListCommand = &cobra.Command{
	Use:   "list",
	Short: "List stored gold standards",
	RunE:  runGoldListCmd,
}

var goldDeleteCommand = &cobra.Command{
	Use:   "delete",
	Short: "Delete a gold standard by id",
	RunE:  runGoldDeleteCmd,
}

var (
	goldConfigPath string
	goldUserID     string
	goldTitle      string
	goldLimit      int
	goldID         int64
	goldVerbose    bool
)

func init() {
	for _, cmd := range []*cobra.Command{goldListCommand, goldDeleteCommand} {
		cmd.Flags().StringVar(&goldConfigPath, "config", "", "Path to config.json file")
		cmd.Flags().StringVarP(&goldUserID, "user", "u", "", "User id the gold standards belong to")
		cmd.Flags().BoolVarP(&goldVerbose, "verbose", "v", false, "Print detailed debug information")
	}

	goldListCommand.Flags().StringVarP(&goldTitle, "title", "t", "", "Only list gold standards for this job title")
	goldListCommand.Flags().IntVar(&goldLimit, "limit", 10, "Maximum number of records to list")

	goldDeleteCommand.Flags().Int64Var(&goldID, "id", 0, "Gold standard id to delete (required)")
	_ = goldDeleteCommand.MarkFlagRequired("id")

	goldCommand.AddCommand(goldListCommand)
	goldCommand.AddCommand(goldDeleteCommand)
	rootCmd.AddCommand(goldCommand)
}

func goldStore(ctx context.Context) (*clients, string, error) {
	cfg, err := loadCLIConfig(goldConfigPath, goldVerbose)
	if err != nil {
		return nil, "", err
	}
	if goldUserID != "" {
		cfg.UserID = goldUserID
	}
	if cfg.UserID == "" {
		return nil, "", fmt.Errorf("a user id is required (--user or config file)")
	}

	conns := connect(ctx, cfg, goldVerbose)
	if conns.store == nil {
		conns.close()
		return nil, "", fmt.Errorf("gold standards require a database connection (set %s)", "DATABASE_URL")
	}
	return conns, cfg.UserID, nil
}

func runGoldListCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	conns, userID, err := goldStore(ctx)
	if err != nil {
		return err
	}
	defer conns.close()

	standards, err := conns.store.GetGoldStandards(ctx, userID, goldTitle, goldLimit)
	if err != nil {
		return fmt.Errorf("failed to list gold standards: %w", err)
	}
	if len(standards) == 0 {
		fmt.Println("No gold standards stored.")
		return nil
	}

	for _, gs := range standards {
		fmt.Printf("#%d  %s  (updated %s)\n", gs.ID, gs.JobTitle, gs.UpdatedAt.Format("2006-01-02"))
	}
	return nil
}

func runGoldDeleteCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	conns, userID, err := goldStore(ctx)
	if err != nil {
		return err
	}
	defer conns.close()

	if err := conns.store.DeleteGoldStandard(ctx, goldID, userID); err != nil {
		return fmt.Errorf("failed to delete gold standard: %w", err)
	}
	fmt.Printf("Deleted gold standard #%d\n", goldID)
	return nil
}
