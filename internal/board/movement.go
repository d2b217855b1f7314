package board

import (
	"fmt"

	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// PortalKind distinguishes ladders from snakes
type PortalKind string

const (
	PortalLadder PortalKind = "ladder"
	PortalSnake  PortalKind = "snake"
)

// Crossing describes a portal that was actually travelled
type Crossing struct {
	From int        `json:"from"`
	To   int        `json:"to"`
	Kind PortalKind `json:"type"`
}

// Actor carries the mover's traits that influence movement
type Actor struct {
	Name      string
	Role      models.Role
	HasShield bool
}

// MoveResult is the outcome of resolving one move
type MoveResult struct {
	// FinalPosition is where the mover ends up, always within [1,100]
	FinalPosition int
	// LandedOn is the cell reached before any portal fired; cell
	// classification always uses this, never the portal destination
	LandedOn int
	// Crossing is set only when an uncontested portal crossing occurred
	Crossing *Crossing
	// ShieldConsumed is set when a shield blocked a snake
	ShieldConsumed bool
	Dodged         bool
	Trampolined    bool
	BuilderBonus   bool
	Logs           []string
}

// PortalTouched reports whether the landing cell's portal fired, was blocked
// or was twisted. Any of these overrides special-cell handling.
func (r MoveResult) PortalTouched() bool {
	return r.Crossing != nil || r.ShieldConsumed || r.Dodged || r.Trampolined
}

const builderLadderBonus = 3

// ResolveMove computes where a player ends up after moving steps cells from
// position. Steps may be negative (penalties, hostile cards) or exceed a die
// range (card-driven leaps); behavior is identical regardless of sign or
// magnitude. Overshooting cell 100 reflects back from the wall; undershooting
// cell 1 clamps.
func ResolveMove(position, steps int, portals map[int]int, actor Actor, rng Rand) MoveResult {
	res := MoveResult{}

	raw := position + steps
	if raw > MaxCell {
		raw = MaxCell - (raw - MaxCell)
		res.Logs = append(res.Logs, fmt.Sprintf("%s overshot the final cell and bounced back to %d", actor.Name, raw))
	}
	if raw < MinCell {
		raw = MinCell
	}

	res.LandedOn = raw
	res.FinalPosition = raw

	dest, ok := portals[raw]
	if !ok {
		return res
	}

	if dest < raw {
		// snake
		switch {
		case actor.HasShield:
			res.ShieldConsumed = true
			res.Logs = append(res.Logs, fmt.Sprintf("%s's shield shattered and blocked the snake at %d", actor.Name, raw))
		case actor.Role == models.RoleNinja && rng.Float64() < 0.5:
			res.Dodged = true
			res.Logs = append(res.Logs, fmt.Sprintf("%s flipped over the snake at %d", actor.Name, raw))
		case actor.Role == models.RoleJester && rng.Float64() < 0.5:
			climb := raw + (raw - dest)
			if climb > MaxCell {
				climb = MaxCell
			}
			res.Trampolined = true
			res.FinalPosition = climb
			res.Logs = append(res.Logs, fmt.Sprintf("%s bounced off the snake and sprang up to %d", actor.Name, climb))
		default:
			res.FinalPosition = dest
			res.Crossing = &Crossing{From: raw, To: dest, Kind: PortalSnake}
			res.Logs = append(res.Logs, fmt.Sprintf("%s slid down a snake from %d to %d", actor.Name, raw, dest))
		}
		return res
	}

	// ladder
	top := dest
	if actor.Role == models.RoleBuilder {
		top = dest + builderLadderBonus
		if top > MaxCell {
			top = MaxCell
		}
		res.BuilderBonus = true
	}
	res.FinalPosition = top
	res.Crossing = &Crossing{From: raw, To: top, Kind: PortalLadder}
	if res.BuilderBonus {
		res.Logs = append(res.Logs, fmt.Sprintf("%s built an extension and climbed from %d all the way to %d", actor.Name, raw, top))
	} else {
		res.Logs = append(res.Logs, fmt.Sprintf("%s climbed a ladder from %d to %d", actor.Name, raw, top))
	}
	return res
}
