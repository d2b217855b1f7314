package models

// PenaltyType is the kind of punishment attached to a failed challenge
type PenaltyType string

const (
	PenaltySteps    PenaltyType = "steps"
	PenaltySkipTurn PenaltyType = "skip_turn"
)

// Penalty is applied when a player gives up on a challenge
type Penalty struct {
	Type  PenaltyType `json:"type"`
	Value int         `json:"value"`
}

// Challenge is a pending skill challenge. While Generating is set the text is
// a placeholder awaiting the external generator (or its fallback).
type Challenge struct {
	PlayerID   string  `json:"playerId"`
	Text       string  `json:"text"`
	Penalty    Penalty `json:"penalty"`
	Generating bool    `json:"generating"`
}

// Treasure is a pending treasure pickup awaiting dismissal
type Treasure struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// RoleSelection is a pending role-shrine choice
type RoleSelection struct {
	PlayerID string `json:"playerId"`
	Choices  []Role `json:"choices"`
}
