package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

var botNames = []string{"Rusty", "Clank", "Widget", "Sprocket", "Gizmo", "Bolt"}

// Join adds a player to a waiting room and returns them
func (e *Engine) Join(s *models.Session, name, avatar string, isBot bool) (*models.Player, error) {
	if s.Status != models.StatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(s.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	p := &models.Player{
		ID:       uuid.New().String(),
		Name:     name,
		Avatar:   avatar,
		Position: board.MinCell,
		IsHost:   len(s.Players) == 0,
		IsBot:    isBot,
		Cards:    []models.Card{},
	}
	s.Players = append(s.Players, p)
	e.appendLog(s, "%s joined the room", p.Name)
	return p, nil
}

// AddBot lets the host seat a bot player while waiting
func (e *Engine) AddBot(s *models.Session, hostID string) (*models.Player, error) {
	host := s.FindPlayer(hostID)
	if host == nil {
		return nil, ErrNoSuchPlayer
	}
	if !host.IsHost {
		return nil, ErrNotHost
	}

	bots := 0
	for _, p := range s.Players {
		if p.IsBot {
			bots++
		}
	}
	name := botNames[bots%len(botNames)]
	return e.Join(s, name, "🤖", true)
}

// Leave removes a player. Leaving down to one remaining player while playing
// force-ends the game with that player declared winner; the host role moves
// to the earliest-joined remaining player.
func (e *Engine) Leave(s *models.Session, playerID string) error {
	idx := -1
	for i, p := range s.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNoSuchPlayer
	}

	leaving := s.Players[idx]
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	e.appendLog(s, "%s left the room", leaving.Name)

	// drop any interaction the leaver owned so the room cannot stall
	if owner, ok := s.PendingInteraction(); ok && owner == playerID {
		clearPending(s)
	}

	for i, id := range s.StakesAcceptedBy {
		if id == playerID {
			s.StakesAcceptedBy = append(s.StakesAcceptedBy[:i], s.StakesAcceptedBy[i+1:]...)
			break
		}
	}

	if idx < s.CurrentTurn {
		s.CurrentTurn--
	}
	if len(s.Players) > 0 && s.CurrentTurn >= len(s.Players) {
		s.CurrentTurn = 0
	}

	if leaving.IsHost && len(s.Players) > 0 {
		s.Players[0].IsHost = true
		e.appendLog(s, "%s is the new host", s.Players[0].Name)
	}

	if s.Status == models.StatusPlaying && len(s.Players) == 1 {
		e.declareWinner(s, s.Players[0])
	}
	return nil
}

// Kick removes another player at the host's request
func (e *Engine) Kick(s *models.Session, hostID, targetID string) error {
	host := s.FindPlayer(hostID)
	if host == nil {
		return ErrNoSuchPlayer
	}
	if !host.IsHost {
		return ErrNotHost
	}
	if hostID == targetID {
		return ErrInvalidTarget
	}
	target := s.FindPlayer(targetID)
	if target == nil {
		return ErrNoSuchPlayer
	}
	e.appendLog(s, "%s was kicked by the host", target.Name)
	return e.Leave(s, targetID)
}

// Start begins play: fresh portal map, everyone on cell 1, host goes first
func (e *Engine) Start(s *models.Session, hostID string) error {
	host := s.FindPlayer(hostID)
	if host == nil {
		return ErrNoSuchPlayer
	}
	if !host.IsHost {
		return ErrNotHost
	}
	if s.Status != models.StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(s.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	s.Portals = board.GeneratePortals(e.rng)
	s.Status = models.StatusPlaying
	s.CurrentTurn = 0
	s.TurnCount = 0
	e.applyFog(s)
	e.appendLog(s, "The game begins! %s rolls first", s.Players[0].Name)
	return nil
}

// Reset returns a playing or finished room to a fresh game without touching
// membership: new portal map, fresh positions, cleared cards and flags.
func (e *Engine) Reset(s *models.Session, hostID string) error {
	host := s.FindPlayer(hostID)
	if host == nil {
		return ErrNoSuchPlayer
	}
	if !host.IsHost {
		return ErrNotHost
	}
	if s.Status == models.StatusWaiting {
		return ErrGameNotRunning
	}

	for _, p := range s.Players {
		p.Position = board.MinCell
		p.Cards = []models.Card{}
		p.Role = models.RoleNone
		p.HasShield = false
		p.DoubleDice = false
		p.ExtraTurn = false
		p.MagicDice = false
		p.SkippedTurns = 0
		p.GiveUpCount = 0
	}

	s.Portals = board.GeneratePortals(e.rng)
	s.Status = models.StatusPlaying
	s.CurrentTurn = 0
	s.TurnCount = 0
	s.LastRoll = 0
	s.LastMoverID = ""
	s.IsRolling = false
	s.WinnerID = ""
	s.ActiveCardEffect = nil
	clearPending(s)
	e.applyFog(s)
	e.appendLog(s, "The board has been reset, new snakes and new ladders!")
	return nil
}

func (e *Engine) applyFog(s *models.Session) {
	if s.Rules.FogOfWar && s.FogDuration > 0 {
		s.PortalsHiddenUntil = e.now().Add(s.FogDuration)
	} else {
		s.PortalsHiddenUntil = time.Time{}
	}
}
