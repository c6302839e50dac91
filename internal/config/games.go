package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// SourceKind names a wire format an adapter knows how to parse.
type SourceKind string

const (
	SourceCTRSS    SourceKind = "ct-rss"    // CT Lottery RSS feed (XML)
	SourceNYCSV    SourceKind = "ny-csv"    // NY Open Data CSV export
	SourceIowaHTML SourceKind = "iowa-html" // Iowa Lottery results page
	SourceLottoNet SourceKind = "lotto-net" // lotto.net results page
)

// SourceConfig describes one external feed endpoint for a game. Fields
// beyond Kind and URL are format-specific hints for the adapter.
type SourceConfig struct {
	Kind        SourceKind `yaml:"kind"`
	URL         string     `yaml:"url"`
	Keyword     string     `yaml:"keyword,omitempty"`     // ct-rss: item title filter
	BonusLabel  string     `yaml:"bonusLabel,omitempty"`  // ct-rss: "LB" or "PB"
	LabelPrefix string     `yaml:"labelPrefix,omitempty"` // iowa-html: e.g. "lblLAN"
	PowerLabel  string     `yaml:"powerLabel,omitempty"`  // iowa-html: e.g. "lblLAPower"
	CSVLayout   string     `yaml:"csvLayout,omitempty"`   // ny-csv: "powerball" or "megamillions"
}

// JackpotConfig describes where a game's jackpot estimate comes from. A
// fixed-amount game (Lucky for Life) never scrapes.
type JackpotConfig struct {
	Fixed       bool   `yaml:"fixed"`
	Amount      string `yaml:"amount,omitempty"`
	CashValue   int64  `yaml:"cashValue,omitempty"`
	URL         string `yaml:"url,omitempty"`
	FallbackURL string `yaml:"fallbackUrl,omitempty"`
}

// GameConfig is the static descriptor for one game: number ranges, draw
// schedule, and feed endpoints. The table is immutable after Load and passed
// explicitly into adapters and the validator.
type GameConfig struct {
	Game       models.Game    `yaml:"game"`
	Name       string         `yaml:"name"`
	MainCount  int            `yaml:"mainCount"`
	MainMax    int            `yaml:"mainMax"`
	BonusMax   int            `yaml:"bonusMax"`
	DrawDays   []time.Weekday `yaml:"drawDays"` // empty means daily
	DrawHour   int            `yaml:"drawHour"` // local (Central) time
	DrawMinute int            `yaml:"drawMinute"`
	Primary    SourceConfig   `yaml:"primary"`
	Fallback   *SourceConfig  `yaml:"fallback,omitempty"` // optional; absence is not an error
	Jackpot    JackpotConfig  `yaml:"jackpot"`
}

// DrawsOn reports whether the game is scheduled to draw on the given weekday.
func (gc GameConfig) DrawsOn(day time.Weekday) bool {
	if len(gc.DrawDays) == 0 {
		return true
	}
	for _, d := range gc.DrawDays {
		if d == day {
			return true
		}
	}
	return false
}

// GameTable maps each game to its configuration.
type GameTable map[models.Game]GameConfig

// Get returns the configuration for a game.
func (t GameTable) Get(game models.Game) (GameConfig, error) {
	gc, ok := t[game]
	if !ok {
		return GameConfig{}, fmt.Errorf("no configuration for game %q", game)
	}
	return gc, nil
}

// LoadGames returns the game table: built-in defaults, optionally overridden
// per game by a YAML file (same shape as the defaults).
func LoadGames(path string) (GameTable, error) {
	table := defaultGames()
	if path == "" {
		return table, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games file: %w", err)
	}
	var overrides []GameConfig
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse games file: %w", err)
	}
	for _, gc := range overrides {
		if _, err := models.ParseGame(string(gc.Game)); err != nil {
			return nil, fmt.Errorf("games file: %w", err)
		}
		table[gc.Game] = gc
	}
	return table, nil
}

func defaultGames() GameTable {
	return GameTable{
		models.GameLuckyForLife: {
			Game:       models.GameLuckyForLife,
			Name:       "Lucky for Life",
			MainCount:  5,
			MainMax:    48,
			BonusMax:   18,
			DrawDays:   nil, // daily
			DrawHour:   21,
			DrawMinute: 38,
			Primary: SourceConfig{
				Kind:       SourceCTRSS,
				URL:        "https://www.ctlottery.org/Feeds/rssnumbers.xml",
				Keyword:    "lucky for life",
				BonusLabel: "LB",
			},
			Fallback: &SourceConfig{
				Kind: SourceLottoNet,
				URL:  "https://www.lotto.net/lucky-for-life/numbers",
			},
			Jackpot: JackpotConfig{
				Fixed:     true,
				Amount:    "$7,000/week for life",
				CashValue: 5750000,
			},
		},
		models.GameLottoAmerica: {
			Game:       models.GameLottoAmerica,
			Name:       "Lotto America",
			MainCount:  5,
			MainMax:    52,
			BonusMax:   10,
			DrawDays:   []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
			DrawHour:   22,
			DrawMinute: 0,
			Primary: SourceConfig{
				Kind:        SourceIowaHTML,
				URL:         "https://www.ialottery.com/games/lotto-america",
				LabelPrefix: "lblLAN",
				PowerLabel:  "lblLAPower",
			},
			Fallback: &SourceConfig{
				Kind: SourceLottoNet,
				URL:  "https://www.lotto.net/lotto-america/numbers",
			},
			Jackpot: JackpotConfig{
				URL:         "https://www.powerball.com/lotto-america",
				FallbackURL: "https://www.ialottery.com/games/lotto-america",
			},
		},
		models.GamePowerball: {
			Game:       models.GamePowerball,
			Name:       "Powerball",
			MainCount:  5,
			MainMax:    69,
			BonusMax:   26,
			DrawDays:   []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
			DrawHour:   21,
			DrawMinute: 59,
			Primary: SourceConfig{
				Kind:      SourceNYCSV,
				URL:       "https://data.ny.gov/api/views/d6yy-54nr/rows.csv?accessType=DOWNLOAD",
				CSVLayout: "powerball",
			},
			Fallback: &SourceConfig{
				Kind:       SourceCTRSS,
				URL:        "https://www.ctlottery.org/Feeds/rssnumbers.xml",
				Keyword:    "powerball",
				BonusLabel: "PB",
			},
			Jackpot: JackpotConfig{
				URL:         "https://www.powerball.com/api/v1/estimates/powerball?_format=json",
				FallbackURL: "https://www.powerball.com/",
			},
		},
		models.GameMegaMillions: {
			Game:       models.GameMegaMillions,
			Name:       "Mega Millions",
			MainCount:  5,
			MainMax:    70,
			BonusMax:   25,
			DrawDays:   []time.Weekday{time.Tuesday, time.Friday},
			DrawHour:   22,
			DrawMinute: 0,
			Primary: SourceConfig{
				Kind:      SourceNYCSV,
				URL:       "https://data.ny.gov/api/views/5xaw-6ayf/rows.csv?accessType=DOWNLOAD",
				CSVLayout: "megamillions",
			},
			Fallback: &SourceConfig{
				Kind:        SourceIowaHTML,
				URL:         "https://www.ialottery.com/games/mega-millions",
				LabelPrefix: "lblMMN",
				PowerLabel:  "lblMMPower",
			},
			Jackpot: JackpotConfig{
				URL:         "https://www.megamillions.com/cmspages/utilservice.asmx/GetLatestDrawData",
				FallbackURL: "https://www.megamillions.com/",
			},
		},
	}
}
