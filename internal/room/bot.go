package room

import (
	"log"
	"time"

	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// botGiveUpChance is how often a bot gives up on a challenge instead of
// claiming success.
const botGiveUpChance = 0.3

// maybeScheduleBot runs inside the actor after every mutation. If the game is
// waiting on a bot it arms a single delayed action for it.
func (r *Room) maybeScheduleBot() {
	if r.botPending || r.botDelay <= 0 {
		return
	}
	s := r.session
	if s.Status != models.StatusPlaying {
		return
	}

	var actor *models.Player
	if owner, pending := s.PendingInteraction(); pending {
		if s.Challenge != nil && s.Challenge.Generating {
			return // resolution re-enters as a command and reschedules
		}
		actor = s.FindPlayer(owner)
	} else {
		actor = s.CurrentPlayer()
	}
	if actor == nil || !actor.IsBot {
		return
	}

	r.botPending = true
	id := actor.ID
	time.AfterFunc(r.botDelay, func() {
		if err := r.botAct(id); err != nil && err != ErrRoomClosed {
			log.Printf("room %s: bot %s: %v", r.Code, id, err)
		}
	})
}

// botAct re-checks everything inside the actor; the room may have moved on
// since the action was scheduled.
func (r *Room) botAct(id string) error {
	return r.Update(func(e *game.Engine, s *models.Session) error {
		r.botPending = false

		p := s.FindPlayer(id)
		if p == nil || !p.IsBot || s.Status != models.StatusPlaying {
			return nil
		}

		switch {
		case s.Challenge != nil && s.Challenge.PlayerID == id:
			if s.Challenge.Generating {
				return nil
			}
			if e.Rng().Float64() < botGiveUpChance && p.GiveUpCount < game.GiveUpCap {
				return e.FailChallenge(s, id)
			}
			return e.CompleteChallenge(s, id)
		case s.Treasure != nil && s.Treasure.PlayerID == id:
			return e.DismissTreasure(s, id)
		case s.RoleSelection != nil && s.RoleSelection.PlayerID == id:
			choices := s.RoleSelection.Choices
			return e.SelectRole(s, id, choices[e.Rng().Intn(len(choices))])
		default:
			cur := s.CurrentPlayer()
			if cur == nil || cur.ID != id {
				return nil
			}
			return r.roll(e, s, id)
		}
	})
}
