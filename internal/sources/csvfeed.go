package sources

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// maxCSVCandidates caps how far back into the export one fetch reaches. The
// exports hold the full game history; anything older is already merged or
// belongs to a backfill import, not a refresh cycle.
const maxCSVCandidates = 25

// NYCSVSource reads a NY Open Data CSV export. Rows are oldest-first, so the
// adapter returns the newest tail. Two layouts exist: the Powerball export
// packs main numbers and bonus into one column, Mega Millions keeps the
// bonus in its own column.
type NYCSVSource struct {
	cfg    config.SourceConfig
	client Getter
}

// NewNYCSVSource creates the CSV adapter for one game's feed config.
func NewNYCSVSource(cfg config.SourceConfig, client Getter) *NYCSVSource {
	return &NYCSVSource{cfg: cfg, client: client}
}

func (s *NYCSVSource) Name() string { return "NY_OpenData" }

func (s *NYCSVSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	raw, err := s.client.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv decode: %v", ErrSourceFormatChanged, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: csv export is empty", ErrSourceFormatChanged)
	}

	rows := records[1:] // skip header
	if len(rows) > maxCSVCandidates {
		rows = rows[len(rows)-maxCSVCandidates:]
	}

	draws := make([]models.Draw, 0, len(rows))
	// newest last in the export; emit newest first
	for i := len(rows) - 1; i >= 0; i-- {
		draw, err := s.parseRow(rows[i])
		if err != nil {
			return nil, err
		}
		draws = append(draws, draw)
	}
	return draws, nil
}

func (s *NYCSVSource) parseRow(row []string) (models.Draw, error) {
	if len(row) < 2 {
		return models.Draw{}, fmt.Errorf("%w: row has %d columns", ErrSourceFormatChanged, len(row))
	}

	date, err := time.Parse("01/02/2006", strings.TrimSpace(row[0]))
	if err != nil {
		return models.Draw{}, fmt.Errorf("%w: draw date %q: %v", ErrSourceFormatChanged, row[0], err)
	}

	fields := strings.Fields(row[1])
	var mainFields []string
	var bonus int

	switch s.cfg.CSVLayout {
	case "megamillions":
		// "Draw Date","Winning Numbers","Mega Ball","Multiplier"
		if len(row) < 3 {
			return models.Draw{}, fmt.Errorf("%w: megamillions row has no bonus column", ErrSourceFormatChanged)
		}
		mainFields = fields
		bonus, err = strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return models.Draw{}, fmt.Errorf("%w: mega ball %q", ErrSourceFormatChanged, row[2])
		}
	default:
		// "Draw Date","Winning Numbers","Multiplier"; bonus is the 6th number
		if len(fields) < 6 {
			return models.Draw{}, fmt.Errorf("%w: expected 6 numbers, got %d", ErrSourceFormatChanged, len(fields))
		}
		mainFields = fields[:5]
		bonus, err = strconv.Atoi(fields[5])
		if err != nil {
			return models.Draw{}, fmt.Errorf("%w: bonus %q", ErrSourceFormatChanged, fields[5])
		}
	}

	if len(mainFields) != 5 {
		return models.Draw{}, fmt.Errorf("%w: expected 5 main numbers, got %d", ErrSourceFormatChanged, len(mainFields))
	}
	main := make([]int, 5)
	for i, f := range mainFields {
		main[i], err = strconv.Atoi(f)
		if err != nil {
			return models.Draw{}, fmt.Errorf("%w: main number %q", ErrSourceFormatChanged, f)
		}
	}
	sort.Ints(main)

	return models.Draw{
		Date:  date.Format(models.DateLayout),
		Main:  main,
		Bonus: bonus,
	}, nil
}
