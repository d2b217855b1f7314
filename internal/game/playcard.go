package game

import (
	"github.com/aaronzipp/serpents-and-stairways/internal/cards"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// PlayCard removes the card from the caster's hand and dispatches its effect.
// Playing a card never advances the turn, and cards may be played out of
// turn. Movement effects can still win the game.
func (e *Engine) PlayCard(s *models.Session, playerID string, cardIndex int, targetID string) error {
	if s.Status != models.StatusPlaying {
		return ErrGameNotRunning
	}
	caster := s.FindPlayer(playerID)
	if caster == nil {
		return ErrNoSuchPlayer
	}
	if cardIndex < 0 || cardIndex >= len(caster.Cards) {
		return ErrInvalidCard
	}
	card := caster.Cards[cardIndex]

	var target *models.Player
	if card.Target == models.TargetOther {
		if targetID == "" || targetID == playerID {
			return ErrInvalidTarget
		}
		target = s.FindPlayer(targetID)
		if target == nil {
			return ErrInvalidTarget
		}
	}

	caster.Cards = append(caster.Cards[:cardIndex], caster.Cards[cardIndex+1:]...)

	out, err := cards.Apply(s, caster, card, target, e.rng)
	if err != nil {
		return err
	}
	s.ActiveCardEffect = &out.Effect
	// the reposition belongs to the card, not to the last dice roll
	s.LastRoll = 0
	s.LastMoverID = ""
	for _, line := range out.Logs {
		e.appendLog(s, "%s", line)
	}

	e.checkWin(s)
	return nil
}

// grantMageCard gives a freshly drawn card if the hand has room
func (e *Engine) grantMageCard(s *models.Session, p *models.Player) {
	if len(p.Cards) >= cards.HandLimit {
		e.appendLog(s, "%s's hands are too full for the mage's gift", p.Name)
		return
	}
	card := cards.Draw(e.rng)
	p.Cards = append(p.Cards, card)
	e.appendLog(s, "%s received %s %s from the shrine", p.Name, card.Emoji, card.Name)
}
