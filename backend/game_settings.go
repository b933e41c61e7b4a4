package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

// GameSettings are read once at game start; mid-game changes take effect on
// the next reset.
type GameSettings struct {
	VariantName     string     `json:"variant"`
	RedType         PlayerType `json:"-"`
	BlackType       PlayerType `json:"-"`
	RedDifficulty   int        `json:"red_difficulty"`
	BlackDifficulty int        `json:"black_difficulty"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		VariantName:     DefaultVariant().Name,
		RedType:         PlayerHuman,
		BlackType:       PlayerAI,
		RedDifficulty:   5,
		BlackDifficulty: 5,
	}
}
