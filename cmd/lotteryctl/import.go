package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/services"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [game] [file.csv]",
		Short: "Backfill historical draws from a CSV file",
		Long: `Backfill one game's ledger from a CSV file with rows of the form

  date,n1,n2,n3,n4,n5,bonus

where date is YYYY-MM-DD. Rows failing validation are skipped with a
warning; dates already in the ledger are left untouched by the merge.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := models.ParseGame(args[0])
			if err != nil {
				return err
			}

			_, games, repo, err := openStore()
			if err != nil {
				return err
			}
			gc, err := games.Get(game)
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open CSV file: %w", err)
			}
			defer f.Close()

			reader := csv.NewReader(f)
			reader.FieldsPerRecord = -1
			records, err := reader.ReadAll()
			if err != nil {
				return fmt.Errorf("parse CSV file: %w", err)
			}

			now := time.Now()
			var draws []models.Draw
			skipped := 0
			for i, record := range records {
				if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
					continue // header
				}
				draw, err := parseImportRow(record)
				if err != nil {
					fmt.Fprintf(os.Stderr, "row %d skipped: %v\n", i+1, err)
					skipped++
					continue
				}
				if verr := services.ValidateDraw(draw, gc, now); verr != nil {
					fmt.Fprintf(os.Stderr, "row %d rejected: %v\n", i+1, verr)
					skipped++
					continue
				}
				draws = append(draws, draw)
			}
			if len(draws) == 0 {
				return fmt.Errorf("no valid draws in %s", args[1])
			}

			inserted, err := repo.Merge(context.Background(), game, draws)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			fmt.Printf("%s: inserted %d draws (%d skipped, %d already present)\n",
				game, inserted, skipped, len(draws)-inserted)
			return nil
		},
	}
}

func parseImportRow(record []string) (models.Draw, error) {
	if len(record) < 7 {
		return models.Draw{}, fmt.Errorf("need 7 columns, got %d", len(record))
	}

	date := strings.TrimSpace(record[0])
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.Draw{}, fmt.Errorf("bad date %q", record[0])
	}

	main := make([]int, 5)
	for i := 0; i < 5; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(record[i+1]))
		if err != nil {
			return models.Draw{}, fmt.Errorf("bad main number %q", record[i+1])
		}
		main[i] = n
	}
	sort.Ints(main)

	bonus, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return models.Draw{}, fmt.Errorf("bad bonus %q", record[6])
	}

	return models.Draw{Date: date, Main: main, Bonus: bonus}, nil
}
