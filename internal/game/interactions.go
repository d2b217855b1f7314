package game

import (
	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// pendingChallengeFor validates that playerID owns the pending challenge
func pendingChallengeFor(s *models.Session, playerID string) (*models.Challenge, *models.Player, error) {
	if s.Challenge == nil {
		return nil, nil, ErrNoPendingInteraction
	}
	if s.Challenge.PlayerID != playerID {
		return nil, nil, ErrNotYourTurn
	}
	p := s.FindPlayer(playerID)
	if p == nil {
		return nil, nil, ErrNoSuchPlayer
	}
	return s.Challenge, p, nil
}

// CompleteChallenge marks the pending challenge as done and advances the turn
func (e *Engine) CompleteChallenge(s *models.Session, playerID string) error {
	_, p, err := pendingChallengeFor(s, playerID)
	if err != nil {
		return err
	}
	e.appendLog(s, "%s completed the challenge!", p.Name)
	s.Challenge = nil
	e.finishTurn(s, p, 0)
	return nil
}

// FailChallenge applies the challenge penalty as a give-up. Give-ups are
// capped; at the cap further attempts are rejected as no-ops.
func (e *Engine) FailChallenge(s *models.Session, playerID string) error {
	ch, p, err := pendingChallengeFor(s, playerID)
	if err != nil {
		return err
	}
	if p.GiveUpCount >= GiveUpCap {
		return ErrGiveUpCapReached
	}
	p.GiveUpCount++

	// locals initialized before branching on penalty type
	mv := board.MoveResult{FinalPosition: p.Position, LandedOn: p.Position}
	penalty := ch.Penalty

	switch penalty.Type {
	case models.PenaltySkipTurn:
		p.SkippedTurns += penalty.Value
		e.appendLog(s, "%s gave up and will sit out %d turn(s)", p.Name, penalty.Value)
	default: // steps
		mv = board.ResolveMove(p.Position, -penalty.Value, s.Portals, actorOf(p), e.rng)
		if mv.ShieldConsumed {
			p.HasShield = false
		}
		p.Position = mv.FinalPosition
		e.appendLog(s, "%s gave up and stumbles back to %d", p.Name, mv.LandedOn)
		for _, line := range mv.Logs {
			e.appendLog(s, "%s", line)
		}
	}

	s.Challenge = nil
	e.finishTurn(s, p, 0)
	return nil
}

// SkipChallengeWithCard burns a shield card instead of taking the penalty
func (e *Engine) SkipChallengeWithCard(s *models.Session, playerID string, cardIndex int) error {
	_, p, err := pendingChallengeFor(s, playerID)
	if err != nil {
		return err
	}
	if cardIndex < 0 || cardIndex >= len(p.Cards) {
		return ErrInvalidCard
	}
	card := p.Cards[cardIndex]
	if card.Effect != models.EffectShield {
		return ErrInvalidCard
	}
	p.Cards = append(p.Cards[:cardIndex], p.Cards[cardIndex+1:]...)
	e.appendLog(s, "%s burned %s %s to skip the challenge", p.Name, card.Emoji, card.Name)
	s.Challenge = nil
	e.finishTurn(s, p, 0)
	return nil
}

// DismissTreasure acknowledges the treasure pickup and advances the turn
func (e *Engine) DismissTreasure(s *models.Session, playerID string) error {
	if s.Treasure == nil {
		return ErrNoPendingInteraction
	}
	if s.Treasure.PlayerID != playerID {
		return ErrNotYourTurn
	}
	p := s.FindPlayer(playerID)
	if p == nil {
		return ErrNoSuchPlayer
	}
	s.Treasure = nil
	e.finishTurn(s, p, 0)
	return nil
}

// SelectRole commits a shrine choice. Choosing mage also grants a free card.
func (e *Engine) SelectRole(s *models.Session, playerID string, role models.Role) error {
	if s.RoleSelection == nil {
		return ErrNoPendingInteraction
	}
	if s.RoleSelection.PlayerID != playerID {
		return ErrNotYourTurn
	}
	p := s.FindPlayer(playerID)
	if p == nil {
		return ErrNoSuchPlayer
	}

	offered := false
	for _, r := range s.RoleSelection.Choices {
		if r == role {
			offered = true
			break
		}
	}
	if !offered {
		return ErrInvalidRole
	}

	p.Role = role
	e.appendLog(s, "%s embraced the %s role", p.Name, role)
	if role == models.RoleMage {
		e.grantMageCard(s, p)
	}
	s.RoleSelection = nil
	e.finishTurn(s, p, 0)
	return nil
}
