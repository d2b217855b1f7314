package game

import (
	"strings"

	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// UpdateStakes lets the host describe what the game is played for. Changing
// the text voids every earlier acceptance.
func (e *Engine) UpdateStakes(s *models.Session, hostID, stakes string) error {
	host := s.FindPlayer(hostID)
	if host == nil {
		return ErrNoSuchPlayer
	}
	if !host.IsHost {
		return ErrNotHost
	}

	stakes = strings.TrimSpace(stakes)
	s.Stakes = stakes
	s.StakesAcceptedBy = nil
	if stakes == "" {
		e.appendLog(s, "%s cleared the stakes", host.Name)
		return nil
	}
	e.appendLog(s, "%s set the stakes: %s", host.Name, stakes)
	return nil
}

// AcceptStakes records a player's agreement. Accepting twice is harmless.
func (e *Engine) AcceptStakes(s *models.Session, playerID string) error {
	p := s.FindPlayer(playerID)
	if p == nil {
		return ErrNoSuchPlayer
	}
	if s.Stakes == "" {
		return ErrNoPendingInteraction
	}
	for _, id := range s.StakesAcceptedBy {
		if id == playerID {
			return nil
		}
	}
	s.StakesAcceptedBy = append(s.StakesAcceptedBy, playerID)
	e.appendLog(s, "%s accepted the stakes", p.Name)
	return nil
}

// UpdateRules changes the house rules. Only allowed before the game starts.
func (e *Engine) UpdateRules(s *models.Session, hostID string, rules models.Rules) error {
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
	s.Rules = rules
	e.appendLog(s, "%s updated the house rules", host.Name)
	return nil
}

// Say appends a chat message from a player. Empty messages are dropped and
// long ones truncated.
func (e *Engine) Say(s *models.Session, playerID, text string) error {
	p := s.FindPlayer(playerID)
	if p == nil {
		return ErrNoSuchPlayer
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > ChatMessageLimit {
		text = string(runes[:ChatMessageLimit])
	}
	s.Chat = append(s.Chat, models.ChatMessage{
		PlayerID: p.ID,
		Name:     p.Name,
		Text:     text,
		At:       e.now(),
	})
	if len(s.Chat) > ChatLimit {
		s.Chat = s.Chat[len(s.Chat)-ChatLimit:]
	}
	return nil
}
