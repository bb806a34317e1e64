package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dbCommand = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbInitCommand = &cobra.Command{
	Use:   "init",
	Short: "Create the relational and knowledge-base schemas",
	Long: `Creates the gold standard, feedback and interaction tables, and the
pgvector knowledge-base table when embeddings are configured. Safe to
run repeatedly.`,
	RunE: runDBInitCmd,
}

var (
	dbConfigPath string
	dbVerbose    bool
)

func init() {
	dbInitCommand.Flags().StringVar(&dbConfigPath, "config", "", "Path to config.json file")
	dbInitCommand.Flags().BoolVarP(&dbVerbose, "verbose", "v", false, "Print detailed debug information")

	dbCommand.AddCommand(dbInitCommand)
	rootCmd.AddCommand(dbCommand)
}

func runDBInitCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(dbConfigPath, dbVerbose)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("a database URL is required (config file or DATABASE_URL)")
	}

	conns := connect(ctx, cfg, dbVerbose)
	defer conns.close()
	if conns.store == nil {
		return fmt.Errorf("could not connect to the database")
	}

	if err := conns.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create relational schema: %w", err)
	}
	fmt.Println("Relational schema ready")

	if conns.vectors != nil {
		if err := conns.vectors.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create knowledge schema: %w", err)
		}
		fmt.Println("Knowledge-base schema ready")
	} else {
		fmt.Println("Skipping knowledge-base schema (no embedder configured)")
	}
	return nil
}
