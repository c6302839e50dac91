// lotteryctl is the operations CLI for the lottery tracker: one-shot
// refresh runs, ledger data correction, and historical CSV backfill.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	filerepo "github.com/lottotrack/lottery-tracker-backend/internal/repositories/file"
)

func main() {
	// optional .env, same as the API server
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "lotteryctl",
		Short: "Operations tooling for the lottery results tracker",
	}

	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(fixCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads config plus the game table and opens the file ledger
// repository, shared by every subcommand.
func openStore() (*config.Config, config.GameTable, *filerepo.LedgerRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	games, err := config.LoadGames(cfg.Scheduler.GamesFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load game table: %w", err)
	}

	names := make(map[models.Game]string, len(games))
	for game, gc := range games {
		names[game] = gc.Name
	}
	repo, err := filerepo.NewLedgerRepository(cfg.Store.DataDir, names)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open ledger store: %w", err)
	}
	return cfg, games, repo, nil
}
