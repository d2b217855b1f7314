package models

import "time"

// LogEntry is a line of game history shown to every player
type LogEntry struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// ChatMessage is an entry in the room chat feed. Log lines are mirrored in as
// system messages.
type ChatMessage struct {
	PlayerID string    `json:"playerId,omitempty"`
	Name     string    `json:"name,omitempty"`
	Text     string    `json:"text"`
	System   bool      `json:"system,omitempty"`
	At       time.Time `json:"at"`
}

// Rules holds the house rule toggles for a room
type Rules struct {
	// ExtraRollOnSix keeps the turn after rolling a natural 6
	ExtraRollOnSix bool `json:"extraRollOnSix"`
	// FogOfWar hides the portal map from snapshots for a while after start/reset
	FogOfWar bool `json:"fogOfWar"`
}

// Session is the authoritative shared document for one room. It is owned by
// that room's actor goroutine; nothing else mutates it.
type Session struct {
	Code    string    `json:"code"`
	Status  Status    `json:"status"`
	Players []*Player `json:"players"`

	CurrentTurn int         `json:"currentTurnIndex"`
	TurnCount   int         `json:"turnCount"`
	Portals     map[int]int `json:"portals,omitempty"`

	LastRoll    int    `json:"lastRoll"`
	LastMoverID string `json:"lastMoverId,omitempty"`
	IsRolling   bool   `json:"isRolling"`

	Challenge     *Challenge     `json:"currentChallenge,omitempty"`
	Treasure      *Treasure      `json:"currentTreasure,omitempty"`
	RoleSelection *RoleSelection `json:"currentRoleSelection,omitempty"`

	ActiveCardEffect *CardEffect `json:"activeCardEffect,omitempty"`

	WinnerID string `json:"winnerId,omitempty"`

	Logs []LogEntry    `json:"logs"`
	Chat []ChatMessage `json:"chat"`

	Stakes           string   `json:"stakes,omitempty"`
	StakesAcceptedBy []string `json:"stakesAcceptedBy,omitempty"`

	Rules Rules `json:"rules"`

	PortalsHiddenUntil time.Time     `json:"portalsHiddenUntil,omitempty"`
	FogDuration        time.Duration `json:"-"`

	// Theme seeds the external challenge generator
	Theme string `json:"theme,omitempty"`
}

// FindPlayer returns the player with the given id, or nil
func (s *Session) FindPlayer(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil
func (s *Session) CurrentPlayer() *Player {
	if len(s.Players) == 0 || s.CurrentTurn < 0 || s.CurrentTurn >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentTurn]
}

// Host returns the host player, or nil
func (s *Session) Host() *Player {
	for _, p := range s.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// PendingInteraction reports whether a deferred interaction blocks the turn,
// and who owns it.
func (s *Session) PendingInteraction() (string, bool) {
	switch {
	case s.Challenge != nil:
		return s.Challenge.PlayerID, true
	case s.Treasure != nil:
		return s.Treasure.PlayerID, true
	case s.RoleSelection != nil:
		return s.RoleSelection.PlayerID, true
	}
	return "", false
}

// Leader returns the player closest to cell 100, or nil for an empty room
func (s *Session) Leader() *Player {
	var lead *Player
	for _, p := range s.Players {
		if lead == nil || p.Position > lead.Position {
			lead = p
		}
	}
	return lead
}
