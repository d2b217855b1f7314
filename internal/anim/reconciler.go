// Package anim turns discrete session snapshots into a time-ordered cue
// sequence a client can play back: dice spins, per-cell walks, portal
// transitions and holds. Display state lives here, decoupled from the
// authoritative positions, and always settles on the authoritative truth.
package anim

import (
	"time"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// Playback tempos
const (
	SpinTick     = 100 * time.Millisecond
	ResultHold   = 900 * time.Millisecond
	StepTick     = 200 * time.Millisecond
	PortalStage  = 350 * time.Millisecond
	SlideHold    = 250 * time.Millisecond
	ThinkingHold = 600 * time.Millisecond
)

// spinFaces is how many die faces one rolling snapshot cycles through
const spinFaces = 6

// CueKind names one visual or audio beat
type CueKind string

const (
	CueDiceSpin     CueKind = "dice_spin"
	CueDiceResult   CueKind = "dice_result"
	CueStep         CueKind = "step"
	CuePortalEnter  CueKind = "portal_enter"
	CuePortalTravel CueKind = "portal_travel"
	CuePortalExit   CueKind = "portal_exit"
	CueSlide        CueKind = "slide"
	CueSnap         CueKind = "snap"
	CueThinking     CueKind = "thinking"
)

// Cue is one playback beat. At is the offset from the snapshot observation;
// Cell is the display cell after the beat where that applies.
type Cue struct {
	Kind     CueKind
	PlayerID string
	Cell     int
	Face     int
	Portal   board.PortalKind
	At       time.Duration
}

// job is one queued movement animation for a player
type job struct {
	from         int
	to           int
	roll         int
	pendingAfter bool
}

// Reconciler diffs successive snapshots into cues. Not safe for concurrent
// use; drive it from the client's receive loop.
type Reconciler struct {
	primed  bool
	display map[string]int
	last    map[string]int
	order   []string
	queues  map[string][]job
}

// NewReconciler starts with no observed state; the first snapshot is adopted
// silently.
func NewReconciler() *Reconciler {
	return &Reconciler{
		display: make(map[string]int),
		last:    make(map[string]int),
		queues:  make(map[string][]job),
	}
}

// DisplayPosition reports where a player's token should currently be drawn
func (r *Reconciler) DisplayPosition(playerID string) (int, bool) {
	pos, ok := r.display[playerID]
	return pos, ok
}

// Observe ingests one snapshot and returns the cues it produces, in playback
// order. A snapshot observed while the dice are still rolling returns spin
// cues and keeps movement queued for the settled snapshot that follows.
func (r *Reconciler) Observe(s *models.Session) []Cue {
	if !r.primed {
		r.adopt(s)
		r.primed = true
		return nil
	}

	r.syncRoster(s)

	pendingOwner, hasPending := s.PendingInteraction()
	for _, id := range r.order {
		p := s.FindPlayer(id)
		if p == nil {
			continue
		}
		if p.Position == r.last[id] {
			continue
		}
		roll := 0
		if s.LastMoverID == id {
			roll = s.LastRoll
		}
		r.queues[id] = append(r.queues[id], job{
			from:         r.last[id],
			to:           p.Position,
			roll:         roll,
			pendingAfter: hasPending && pendingOwner == id,
		})
		r.last[id] = p.Position
	}

	if s.IsRolling {
		return spinCues(s.LastMoverID)
	}
	return r.drain(s)
}

// adopt takes every authoritative position as-is, without cues
func (r *Reconciler) adopt(s *models.Session) {
	for _, p := range s.Players {
		r.display[p.ID] = p.Position
		r.last[p.ID] = p.Position
		r.order = append(r.order, p.ID)
	}
}

// syncRoster adds joiners silently and forgets leavers
func (r *Reconciler) syncRoster(s *models.Session) {
	seen := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		seen[p.ID] = true
		if _, known := r.last[p.ID]; !known {
			r.display[p.ID] = p.Position
			r.last[p.ID] = p.Position
			r.order = append(r.order, p.ID)
		}
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if seen[id] {
			kept = append(kept, id)
			continue
		}
		delete(r.display, id)
		delete(r.last, id)
		delete(r.queues, id)
	}
	r.order = kept
}

func spinCues(playerID string) []Cue {
	cues := make([]Cue, 0, spinFaces)
	for i := 0; i < spinFaces; i++ {
		cues = append(cues, Cue{
			Kind:     CueDiceSpin,
			PlayerID: playerID,
			Face:     i + 1,
			At:       time.Duration(i) * SpinTick,
		})
	}
	return cues
}

// drain plays every queued job, one player at a time in join order, on a
// single shared clock.
func (r *Reconciler) drain(s *models.Session) []Cue {
	var cues []Cue
	var clock time.Duration

	for _, id := range r.order {
		for len(r.queues[id]) > 0 {
			j := r.queues[id][0]
			r.queues[id] = r.queues[id][1:]

			if j.roll > 0 && s.LastMoverID == id {
				cues = append(cues, Cue{Kind: CueDiceResult, PlayerID: id, Face: j.roll, At: clock})
				clock += ResultHold
			}
			cues, clock = r.playJob(s, id, j, cues, clock)
		}
	}
	return cues
}

func (r *Reconciler) playJob(s *models.Session, id string, j job, cues []Cue, clock time.Duration) ([]Cue, time.Duration) {
	if j.roll <= 0 {
		// card-driven repositioning gets one delayed transition
		clock += SlideHold
		cues = append(cues, Cue{Kind: CueSlide, PlayerID: id, Cell: j.to, At: clock})
		cues = append(cues, Cue{Kind: CueSnap, PlayerID: id, Cell: j.to, At: clock})
		r.display[id] = j.to
	} else {
		walkEnd := j.from + j.roll
		if walkEnd > board.MaxCell {
			walkEnd = board.MaxCell
		}
		for cell := j.from + 1; cell <= walkEnd; cell++ {
			clock += StepTick
			cues = append(cues, Cue{Kind: CueStep, PlayerID: id, Cell: cell, At: clock})
		}
		r.display[id] = walkEnd

		if walkEnd != j.to {
			dest, hasPortal := s.Portals[walkEnd]
			switch {
			case hasPortal && dest == j.to:
				cues, clock = portalCues(id, walkEnd, dest, cues, clock)
			case hasPortal && dest > walkEnd && j.to > dest:
				// a ladder top passed over by a bonus: ride the ladder, then
				// slide the rest
				cues, clock = portalCues(id, walkEnd, dest, cues, clock)
				clock += SlideHold
				cues = append(cues, Cue{Kind: CueSlide, PlayerID: id, Cell: j.to, At: clock})
			default:
				// bounce off the final cell, a fogged portal or an ability
				// save; one transition, no stages
				clock += SlideHold
				cues = append(cues, Cue{Kind: CueSlide, PlayerID: id, Cell: j.to, At: clock})
			}
			cues = append(cues, Cue{Kind: CueSnap, PlayerID: id, Cell: j.to, At: clock})
			r.display[id] = j.to
		}
	}

	if j.pendingAfter {
		cues = append(cues, Cue{Kind: CueThinking, PlayerID: id, Cell: j.to, At: clock})
		clock += ThinkingHold
	}
	return cues, clock
}

// portalCues plays the three-stage enter/travel/exit transition
func portalCues(id string, from, to int, cues []Cue, clock time.Duration) ([]Cue, time.Duration) {
	kind := board.PortalLadder
	if to < from {
		kind = board.PortalSnake
	}
	cues = append(cues, Cue{Kind: CuePortalEnter, PlayerID: id, Cell: from, Portal: kind, At: clock})
	clock += PortalStage
	cues = append(cues, Cue{Kind: CuePortalTravel, PlayerID: id, Portal: kind, At: clock})
	clock += PortalStage
	cues = append(cues, Cue{Kind: CuePortalExit, PlayerID: id, Cell: to, Portal: kind, At: clock})
	clock += PortalStage
	return cues, clock
}
