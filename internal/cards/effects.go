package cards

import (
	"fmt"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// Fixed movement magnitudes for movement cards
const (
	curseBackSteps = -3
	teleportSteps  = 5
	rocketSteps    = 7
	bombSteps      = -5
)

// Outcome reports what a card play did, for logs and client playback
type Outcome struct {
	Effect models.CardEffect
	Logs   []string
}

// Apply dispatches a card effect onto the session. The caller has already
// removed the card from the caster's hand and validated the target. For any
// hostile effect the guard order is: target shield consumes and blocks, then
// tank role blocks for free, then the effect lands. Effects that move a
// player re-enter the movement engine so portal and ability interactions stay
// consistent.
func Apply(s *models.Session, caster *models.Player, card models.Card, target *models.Player, rng board.Rand) (Outcome, error) {
	out := Outcome{Effect: models.CardEffect{
		CasterID: caster.ID,
		Effect:   card.Effect,
	}}
	if target != nil {
		out.Effect.TargetID = target.ID
	}

	if card.Target == models.TargetOther {
		if target.HasShield {
			target.HasShield = false
			out.Effect.Blocked = true
			out.Effect.BlockedBy = "shield"
			out.Logs = append(out.Logs, fmt.Sprintf("%s's shield shattered and blocked %s from %s", target.Name, card.Name, caster.Name))
			return out, nil
		}
		if target.Role == models.RoleTank {
			out.Effect.Blocked = true
			out.Effect.BlockedBy = "tank"
			out.Logs = append(out.Logs, fmt.Sprintf("%s shrugged off %s from %s", target.Name, card.Name, caster.Name))
			return out, nil
		}
	}

	move := func(p *models.Player, steps int) {
		res := board.ResolveMove(p.Position, steps, s.Portals, board.Actor{
			Name:      p.Name,
			Role:      p.Role,
			HasShield: p.HasShield,
		}, rng)
		p.Position = res.FinalPosition
		if res.ShieldConsumed {
			p.HasShield = false
		}
		out.Logs = append(out.Logs, res.Logs...)
	}

	switch card.Effect {
	case models.EffectCurseBack:
		out.Logs = append(out.Logs, fmt.Sprintf("%s cursed %s backwards", caster.Name, target.Name))
		move(target, curseBackSteps)
	case models.EffectSkipTarget:
		target.SkippedTurns++
		out.Logs = append(out.Logs, fmt.Sprintf("%s froze %s's next turn", caster.Name, target.Name))
	case models.EffectDoubleDice:
		caster.DoubleDice = true
		out.Logs = append(out.Logs, fmt.Sprintf("%s loaded the dice for the next roll", caster.Name))
	case models.EffectTeleport:
		out.Logs = append(out.Logs, fmt.Sprintf("%s blinked forward", caster.Name))
		move(caster, teleportSteps)
	case models.EffectShield:
		caster.HasShield = true
		out.Logs = append(out.Logs, fmt.Sprintf("%s raised a shield", caster.Name))
	case models.EffectStealCard:
		if len(target.Cards) == 0 {
			out.Logs = append(out.Logs, fmt.Sprintf("%s found nothing to steal from %s", caster.Name, target.Name))
			break
		}
		if len(caster.Cards) >= HandLimit {
			out.Logs = append(out.Logs, fmt.Sprintf("%s has no room to stash a stolen card", caster.Name))
			break
		}
		i := rng.Intn(len(target.Cards))
		stolen := target.Cards[i]
		target.Cards = append(target.Cards[:i], target.Cards[i+1:]...)
		caster.Cards = append(caster.Cards, stolen)
		out.Logs = append(out.Logs, fmt.Sprintf("%s stole a card from %s", caster.Name, target.Name))
	case models.EffectSwapPosition:
		caster.Position, target.Position = target.Position, caster.Position
		out.Logs = append(out.Logs, fmt.Sprintf("%s swapped places with %s", caster.Name, target.Name))
	case models.EffectExtraTurn:
		caster.ExtraTurn = true
		out.Logs = append(out.Logs, fmt.Sprintf("%s will take another turn", caster.Name))
	case models.EffectRocket:
		out.Logs = append(out.Logs, fmt.Sprintf("%s lit a rocket", caster.Name))
		move(caster, rocketSteps)
	case models.EffectBomb:
		out.Logs = append(out.Logs, fmt.Sprintf("%s bombed %s", caster.Name, target.Name))
		move(target, bombSteps)
	case models.EffectMagicDice:
		caster.MagicDice = true
		out.Logs = append(out.Logs, fmt.Sprintf("%s palmed a trick die", caster.Name))
	case models.EffectMagnet:
		out.Logs = append(out.Logs, fmt.Sprintf("%s pulled %s in with a magnet", caster.Name, target.Name))
		move(target, (caster.Position-1)-target.Position)
	default:
		return out, fmt.Errorf("unknown card effect %q", card.Effect)
	}

	return out, nil
}
