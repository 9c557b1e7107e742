// Command ingest is the LeagueWordle data import CLI.
//
// Usage:
//
//	leaguewordle-ingest import roster data/players.json
//	leaguewordle-ingest import worlds data/worlds_players.json
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leaguewordle/leaguewordle-data/internal/config"
	"github.com/leaguewordle/leaguewordle-data/internal/db"
	"github.com/leaguewordle/leaguewordle-data/internal/importer"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "leaguewordle-ingest",
		Short: "LeagueWordle data import CLI",
	}

	root.AddCommand(importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import player JSON files into the players table",
	}
	cmd.AddCommand(importRosterCmd())
	cmd.AddCommand(importWorldsCmd())
	return cmd
}

func importRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <file>",
		Short: "Import a general roster JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(func(ctx context.Context, pool *db.Pool) error {
				count, err := importer.ImportRoster(ctx, pool, args[0], logger)
				return reportImport(count, err)
			})
		},
	}
}

func importWorldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worlds <file>",
		Short: "Import a Worlds tournament JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(func(ctx context.Context, pool *db.Pool) error {
				count, err := importer.ImportWorlds(ctx, pool, args[0], logger)
				return reportImport(count, err)
			})
		},
	}
}

// reportImport converts the importer error taxonomy into the CLI's status
// lines. Only connection failures (handled in runImport) terminate with a
// non-zero exit; everything else prints and returns normally.
func reportImport(count int, err error) error {
	if err == nil {
		fmt.Printf("Successfully imported %d players.\n", count)
		return nil
	}

	var (
		parseErr  *importer.ParseError
		formatErr *importer.UnsupportedFormatError
	)
	switch {
	case errors.Is(err, importer.ErrSchemaMissing):
		fmt.Println("The 'players' table does not exist. Please run the init-db script first.")
	case errors.Is(err, importer.ErrEmptyInput):
		fmt.Println("No players found in the JSON file.")
	case errors.As(err, &parseErr):
		fmt.Println("Error: Invalid JSON file.")
	case errors.As(err, &formatErr):
		fmt.Println("Unsupported JSON format. " + formatErr.Hint)
	default:
		fmt.Printf("Error importing players: %v\n", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runImport handles config loading, DB connection, and context cancellation.
// A connection failure is the one unrecoverable case: it terminates the
// process immediately.
func runImport(fn func(ctx context.Context, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := config.Load()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		fmt.Printf("Error connecting to the database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	return fn(ctx, pool)
}
