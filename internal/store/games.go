package store

// GameID identifies one of the mini-games. It is used as the key for
// every per-game record.
type GameID string

const (
	GameAddition          GameID = "addition"
	GameSubtraction       GameID = "subtraction"
	GameNumberRecognition GameID = "number-recognition"
	GameSeries            GameID = "series"
)

// AllGames returns every game ID in stable display order.
func AllGames() []GameID {
	return []GameID{
		GameAddition,
		GameSubtraction,
		GameNumberRecognition,
		GameSeries,
	}
}

// Valid reports whether id names a known game.
func (id GameID) Valid() bool {
	switch id {
	case GameAddition, GameSubtraction, GameNumberRecognition, GameSeries:
		return true
	}
	return false
}

// Title returns the display name of the game.
func (id GameID) Title() string {
	switch id {
	case GameAddition:
		return "Addition Adventure"
	case GameSubtraction:
		return "Subtraction Safari"
	case GameNumberRecognition:
		return "Number Ninja"
	case GameSeries:
		return "Series Explorer"
	}
	return string(id)
}
