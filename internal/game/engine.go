// Package game implements the room/turn state machine over a Session
// document. Engine methods mutate the session in place and assume the caller
// (the room actor) serializes access.
package game

import (
	"fmt"
	"time"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// Engine applies game operations to sessions. The random source is injected
// so tests can force rolls and ability checks.
type Engine struct {
	rng board.Rand
	now func() time.Time
}

// NewEngine builds an engine around the given random source
func NewEngine(rng board.Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// Rng exposes the engine's random source for fallback draws
func (e *Engine) Rng() board.Rand {
	return e.rng
}

// NewSession creates an empty waiting session for a room
func NewSession(code, theme string, fog time.Duration) *models.Session {
	return &models.Session{
		Code:        code,
		Status:      models.StatusWaiting,
		Players:     []*models.Player{},
		Theme:       theme,
		FogDuration: fog,
		Logs:        []models.LogEntry{},
		Chat:        []models.ChatMessage{},
	}
}

// appendLog records a history line, trims it to the cap and mirrors it into
// the chat feed as a system message.
func (e *Engine) appendLog(s *models.Session, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	now := e.now()

	s.Logs = append(s.Logs, models.LogEntry{Text: text, At: now})
	if len(s.Logs) > LogLimit {
		s.Logs = s.Logs[len(s.Logs)-LogLimit:]
	}

	s.Chat = append(s.Chat, models.ChatMessage{Text: text, System: true, At: now})
	if len(s.Chat) > ChatLimit {
		s.Chat = s.Chat[len(s.Chat)-ChatLimit:]
	}
}

func actorOf(p *models.Player) board.Actor {
	return board.Actor{Name: p.Name, Role: p.Role, HasShield: p.HasShield}
}

// advanceTurn hands the turn to the next player in join order
func advanceTurn(s *models.Session) {
	if len(s.Players) == 0 {
		return
	}
	s.TurnCount++
	s.CurrentTurn = (s.CurrentTurn + 1) % len(s.Players)
}

// finishTurn advances the turn unless a house rule or an extra-turn flag lets
// the same player act again. naturalRoll is the undoubled die value, zero for
// moves that did not come from a roll.
func (e *Engine) finishTurn(s *models.Session, p *models.Player, naturalRoll int) {
	switch {
	case s.Rules.ExtraRollOnSix && naturalRoll == DiceSides:
		e.appendLog(s, "%s rolled a six and goes again", p.Name)
	case p.ExtraTurn:
		p.ExtraTurn = false
		e.appendLog(s, "%s takes an extra turn", p.Name)
	default:
		advanceTurn(s)
	}
}

// clearPending drops whichever deferred interaction is set
func clearPending(s *models.Session) {
	s.Challenge = nil
	s.Treasure = nil
	s.RoleSelection = nil
}

// declareWinner ends the game for the given player, dropping any pending
// interaction even if one was mid-flight.
func (e *Engine) declareWinner(s *models.Session, p *models.Player) {
	s.WinnerID = p.ID
	s.Status = models.StatusFinished
	s.IsRolling = false
	clearPending(s)
	e.appendLog(s, "%s reached the final cell and wins the game!", p.Name)
}

// checkWin declares a winner if any player stands on the final cell
func (e *Engine) checkWin(s *models.Session) *models.Player {
	for _, p := range s.Players {
		if p.Position == board.MaxCell {
			e.declareWinner(s, p)
			return p
		}
	}
	return nil
}

// BuildChallengeContext snapshots what the external generator needs
func BuildChallengeContext(s *models.Session, playerID string) challenge.Context {
	gc := challenge.Context{Theme: s.Theme}
	for _, p := range s.Players {
		if p.ID == playerID {
			gc.ActivePlayer = p.Name
		} else {
			gc.OtherPlayers = append(gc.OtherPlayers, p.Name)
		}
	}
	if lead := s.Leader(); lead != nil {
		gc.Leader = lead.Name
	}
	return gc
}
