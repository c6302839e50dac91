package models

import (
	"fmt"
	"strings"
)

// Game identifies one of the tracked lottery games.
type Game string

const (
	GameLuckyForLife Game = "L4L"
	GameLottoAmerica Game = "LA"
	GamePowerball    Game = "PB"
	GameMegaMillions Game = "MM"
)

// AllGames lists every tracked game in presentation order.
var AllGames = []Game{GameLuckyForLife, GameLottoAmerica, GamePowerball, GameMegaMillions}

// ParseGame converts a case-insensitive game code into a Game.
func ParseGame(code string) (Game, error) {
	switch Game(strings.ToUpper(strings.TrimSpace(code))) {
	case GameLuckyForLife:
		return GameLuckyForLife, nil
	case GameLottoAmerica:
		return GameLottoAmerica, nil
	case GamePowerball:
		return GamePowerball, nil
	case GameMegaMillions:
		return GameMegaMillions, nil
	}
	return "", fmt.Errorf("unknown game %q", code)
}

// Key returns the lowercase form used for ledger file names.
func (g Game) Key() string {
	return strings.ToLower(string(g))
}
