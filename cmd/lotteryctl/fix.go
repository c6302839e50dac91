package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

func fixCmd() *cobra.Command {
	var dropOffSchedule bool

	cmd := &cobra.Command{
		Use:   "fix [game]",
		Short: "Correct ledger data: drop duplicate dates, optionally drop off-schedule draws, and re-sort",
		Long: `Correct one game's ledger (or all ledgers when no game is given).

Duplicate dates are always removed, keeping the first occurrence, and the
ledger is re-sorted newest first. With --drop-off-schedule, draws dated on a
weekday the game never draws on are removed as well (these come from feeds
that omit the draw date).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, games, repo, err := openStore()
			if err != nil {
				return err
			}

			targets := models.AllGames
			if len(args) == 1 {
				game, err := models.ParseGame(args[0])
				if err != nil {
					return err
				}
				targets = []models.Game{game}
			}

			for _, game := range targets {
				gc, err := games.Get(game)
				if err != nil {
					return err
				}

				var predicate func(models.Draw) bool
				if dropOffSchedule && len(gc.DrawDays) > 0 {
					gc := gc
					predicate = func(d models.Draw) bool {
						date, err := time.Parse(models.DateLayout, d.Date)
						if err != nil {
							return true // unparseable dates have no business in a ledger
						}
						return !gc.DrawsOn(date.Weekday())
					}
				}

				removed, err := repo.RemoveDraws(context.Background(), game, predicate)
				if err != nil {
					return fmt.Errorf("fix %s: %w", game, err)
				}
				fmt.Printf("%s: removed %d draws\n", game, removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dropOffSchedule, "drop-off-schedule", false, "also drop draws dated on non-draw weekdays")
	return cmd
}
