package sources

import (
	"fmt"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// GameSources holds the primary adapter and optional fallback for one game.
// The fallback is consulted only when the primary fails; not having one is
// not an error.
type GameSources struct {
	Primary  Source
	Fallback Source
}

// Registry maps each game to its constructed adapters.
type Registry map[models.Game]GameSources

// NewRegistry builds adapters for every game in the table.
func NewRegistry(table config.GameTable, client Getter) (Registry, error) {
	reg := make(Registry, len(table))
	for game, gc := range table {
		primary, err := build(gc.Primary, gc, client)
		if err != nil {
			return nil, fmt.Errorf("game %s primary: %w", game, err)
		}
		gs := GameSources{Primary: primary}
		if gc.Fallback != nil {
			fallback, err := build(*gc.Fallback, gc, client)
			if err != nil {
				return nil, fmt.Errorf("game %s fallback: %w", game, err)
			}
			gs.Fallback = fallback
		}
		reg[game] = gs
	}
	return reg, nil
}

func build(sc config.SourceConfig, gc config.GameConfig, client Getter) (Source, error) {
	switch sc.Kind {
	case config.SourceCTRSS:
		return NewCTRSSSource(sc, client), nil
	case config.SourceNYCSV:
		return NewNYCSVSource(sc, client), nil
	case config.SourceIowaHTML:
		return NewIowaHTMLSource(sc, gc, client), nil
	case config.SourceLottoNet:
		return NewLottoNetSource(sc, gc, client), nil
	}
	return nil, fmt.Errorf("unknown source kind %q", sc.Kind)
}
