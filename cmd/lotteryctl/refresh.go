package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lottotrack/lottery-tracker-backend/internal/services"
	"github.com/lottotrack/lottery-tracker-backend/internal/sources"
	"github.com/lottotrack/lottery-tracker-backend/pkg/fetch"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run the refresh pipeline once and print the per-game report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, games, repo, err := openStore()
			if err != nil {
				return err
			}

			client := fetch.NewClient(cfg.Scheduler.FetchTimeout)
			registry, err := sources.NewRegistry(games, client)
			if err != nil {
				return fmt.Errorf("build source registry: %w", err)
			}

			refresh := services.NewRefreshService(
				games, registry, sources.NewJackpotFetcher(client), repo, cfg.Scheduler.FetchTimeout)
			report := refresh.RunOnce(context.Background())

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
