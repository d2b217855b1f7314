package game

import (
	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/cards"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// RollOutcome tells the room actor what followed from a roll
type RollOutcome struct {
	Roll        int
	SkippedTurn bool
	WinnerID    string
	// ChallengeRequested asks the actor to fire the external generator
	ChallengeRequested bool
}

// Roll performs one die roll for the active player: movement, portal
// resolution, cell classification and either turn advancement or a deferred
// interaction. Rejected unless playerID is exactly the player at the current
// turn index.
func (e *Engine) Roll(s *models.Session, playerID string) (RollOutcome, error) {
	var out RollOutcome

	if s.Status != models.StatusPlaying {
		return out, ErrGameNotRunning
	}
	if _, pending := s.PendingInteraction(); pending {
		return out, ErrPendingInteraction
	}
	cur := s.CurrentPlayer()
	if cur == nil || cur.ID != playerID {
		return out, ErrNotYourTurn
	}

	s.ActiveCardEffect = nil

	if cur.SkippedTurns > 0 {
		cur.SkippedTurns--
		s.LastRoll = 0
		s.LastMoverID = ""
		e.appendLog(s, "%s is frozen and sits this turn out", cur.Name)
		advanceTurn(s)
		out.SkippedTurn = true
		return out, nil
	}

	natural := e.rng.Intn(DiceSides) + 1
	roll := natural
	if cur.DoubleDice {
		cur.DoubleDice = false
		roll *= 2
		if roll > DoubledRollCap {
			roll = DoubledRollCap
		}
		e.appendLog(s, "%s's loaded dice double the roll to %d", cur.Name, roll)
	}
	out.Roll = roll
	s.LastRoll = roll
	s.LastMoverID = cur.ID
	e.appendLog(s, "%s rolled a %d", cur.Name, roll)

	mv := board.ResolveMove(cur.Position, roll, s.Portals, actorOf(cur), e.rng)
	if mv.ShieldConsumed {
		cur.HasShield = false
	}
	cur.Position = mv.FinalPosition
	for _, line := range mv.Logs {
		e.appendLog(s, "%s", line)
	}

	if cur.Position == board.MaxCell {
		e.declareWinner(s, cur)
		out.WinnerID = cur.ID
		return out, nil
	}

	// classification uses the cell actually landed on, never the portal
	// destination, and any portal interaction overrides the special cell
	if !mv.PortalTouched() {
		switch board.Classify(mv.LandedOn) {
		case board.CellChallenge:
			s.Challenge = &models.Challenge{
				PlayerID:   cur.ID,
				Text:       GeneratingPlaceholder,
				Penalty:    challenge.DefaultPenalty(),
				Generating: true,
			}
			e.appendLog(s, "%s landed on a challenge cell", cur.Name)
			out.ChallengeRequested = true
			return out, nil
		case board.CellTreasure:
			if len(cur.Cards) < cards.HandLimit {
				card := cards.Draw(e.rng)
				cur.Cards = append(cur.Cards, card)
				s.Treasure = &models.Treasure{PlayerID: cur.ID, Card: card}
				e.appendLog(s, "%s opened a treasure chest and found %s %s", cur.Name, card.Emoji, card.Name)
				return out, nil
			}
			e.appendLog(s, "%s found a treasure chest but their hands are full", cur.Name)
		case board.CellShrine:
			s.RoleSelection = &models.RoleSelection{
				PlayerID: cur.ID,
				Choices:  e.drawRoleChoices(),
			}
			e.appendLog(s, "%s reached a role shrine", cur.Name)
			return out, nil
		}
	}

	e.finishTurn(s, cur, natural)
	return out, nil
}

// drawRoleChoices picks three distinct roles at random
func (e *Engine) drawRoleChoices() []models.Role {
	pool := make([]models.Role, len(models.AllRoles))
	copy(pool, models.AllRoles)
	for i := len(pool) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:RoleChoiceCount]
}

// ResolveGeneratedChallenge installs the generator's (or fallback's) text on
// the pending challenge. A challenge cleared in the meantime (win, reset,
// leave) makes this a no-op.
func (e *Engine) ResolveGeneratedChallenge(s *models.Session, res challenge.Result) {
	if s.Challenge == nil || !s.Challenge.Generating {
		return
	}
	s.Challenge.Text = res.Text
	s.Challenge.Penalty = res.Penalty
	s.Challenge.Generating = false
	e.appendLog(s, "Challenge: %s", res.Text)
}
