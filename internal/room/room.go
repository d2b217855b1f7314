// Package room runs one goroutine per live room. All session mutations go
// through that goroutine, so engine code never needs locks; subscribers get a
// full state snapshot after every mutation.
package room

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

const (
	// writeWait bounds a single websocket write before the subscriber is dropped
	writeWait = 5 * time.Second

	// generateWait bounds one external challenge generation end to end
	generateWait = 10 * time.Second

	cmdBuffer = 32
)

// ErrRoomClosed is returned for operations on a stopped room
var ErrRoomClosed = errors.New("room closed")

// WinSink records finished games somewhere durable
type WinSink interface {
	RecordWin(ctx context.Context, name, avatar, roomCode string) error
}

type command struct {
	fn    func(*game.Engine, *models.Session) error
	reply chan error
}

// Subscriber is one websocket attached to a room. Writes are serialized per
// connection so broadcasts and direct replies never interleave.
type Subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes one JSON message with a write deadline
func (sub *Subscriber) Send(v any) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sub.conn.WriteJSON(v)
}

// Room owns a session and serializes everything that touches it
type Room struct {
	Code string

	engine    *game.Engine
	session   *models.Session
	generator challenge.Generator
	wins      WinSink
	botDelay  time.Duration

	cmds     chan command
	stop     chan struct{}
	stopOnce sync.Once

	// owned by the run goroutine
	subs        map[*Subscriber]struct{}
	botPending  bool
	winRecorded bool
}

// New starts the actor goroutine for a fresh session
func New(code string, engine *game.Engine, session *models.Session, gen challenge.Generator, wins WinSink, botDelay time.Duration) *Room {
	r := &Room{
		Code:      code,
		engine:    engine,
		session:   session,
		generator: gen,
		wins:      wins,
		botDelay:  botDelay,
		cmds:      make(chan command, cmdBuffer),
		stop:      make(chan struct{}),
		subs:      make(map[*Subscriber]struct{}),
	}
	go r.run()
	return r
}

func (r *Room) run() {
	for {
		select {
		case <-r.stop:
			for sub := range r.subs {
				sub.conn.Close()
			}
			return
		case cmd := <-r.cmds:
			err := cmd.fn(r.engine, r.session)
			cmd.reply <- err
		}
	}
}

// Stop shuts the actor down and closes every subscriber connection
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Room) do(fn func(*game.Engine, *models.Session) error) error {
	reply := make(chan error, 1)
	select {
	case r.cmds <- command{fn: fn, reply: reply}:
	case <-r.stop:
		return ErrRoomClosed
	}
	select {
	case err := <-reply:
		return err
	case <-r.stop:
		return ErrRoomClosed
	}
}

// Update runs fn inside the actor and broadcasts the resulting state to every
// subscriber, whether or not fn returned an error.
func (r *Room) Update(fn func(*game.Engine, *models.Session) error) error {
	return r.do(func(e *game.Engine, s *models.Session) error {
		err := fn(e, s)
		r.afterMutation()
		return err
	})
}

// View runs fn inside the actor without broadcasting. fn must not mutate.
func (r *Room) View(fn func(*models.Session) error) error {
	return r.do(func(_ *game.Engine, s *models.Session) error {
		return fn(s)
	})
}

// afterMutation runs inside the actor after every Update: snapshot fanout,
// win recording, bot scheduling.
func (r *Room) afterMutation() {
	r.broadcast()

	if r.session.WinnerID == "" {
		r.winRecorded = false
	} else if !r.winRecorded {
		r.winRecorded = true
		r.recordWin()
	}

	r.maybeScheduleBot()
}

func (r *Room) recordWin() {
	if r.wins == nil {
		return
	}
	winner := r.session.FindPlayer(r.session.WinnerID)
	if winner == nil || winner.IsBot {
		return
	}
	name, avatar, code := winner.Name, winner.Avatar, r.Code
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.wins.RecordWin(ctx, name, avatar, code); err != nil {
			log.Printf("room %s: recording win for %s: %v", code, name, err)
		}
	}()
}

// Subscribe attaches a websocket and immediately sends it the current state
func (r *Room) Subscribe(conn *websocket.Conn) (*Subscriber, error) {
	sub := &Subscriber{conn: conn}
	err := r.do(func(_ *game.Engine, s *models.Session) error {
		if err := sub.Send(r.snapshot()); err != nil {
			return err
		}
		r.subs[sub] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// SubscriberCount reports how many websockets are attached. A stopped room
// reports zero.
func (r *Room) SubscriberCount() int {
	n := 0
	r.do(func(_ *game.Engine, _ *models.Session) error {
		n = len(r.subs)
		return nil
	})
	return n
}

// Unsubscribe detaches a websocket without closing the room
func (r *Room) Unsubscribe(sub *Subscriber) {
	r.do(func(_ *game.Engine, _ *models.Session) error {
		delete(r.subs, sub)
		return nil
	})
	sub.conn.Close()
}

// Roll runs a dice roll with an extra in-between broadcast so clients can
// animate the spin before the result state lands.
func (r *Room) Roll(playerID string) error {
	return r.Update(func(e *game.Engine, s *models.Session) error {
		return r.roll(e, s, playerID)
	})
}

// roll runs inside the actor, shared by player intents and bots
func (r *Room) roll(e *game.Engine, s *models.Session, playerID string) error {
	if cur := s.CurrentPlayer(); s.Status == models.StatusPlaying && cur != nil && cur.ID == playerID {
		if _, pending := s.PendingInteraction(); !pending {
			s.IsRolling = true
			r.broadcast()
		}
	}
	out, err := e.Roll(s, playerID)
	s.IsRolling = false
	if err != nil {
		return err
	}
	if out.ChallengeRequested {
		r.requestChallenge(s, playerID)
	}
	return nil
}

// requestChallenge fires the external generator off-actor and re-enters the
// result (or a fallback) as a normal command.
func (r *Room) requestChallenge(s *models.Session, playerID string) {
	gc := game.BuildChallengeContext(s, playerID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), generateWait)
		defer cancel()
		res, genErr := r.generator.Generate(ctx, gc)
		err := r.Update(func(e *game.Engine, s *models.Session) error {
			if genErr != nil {
				res = challenge.Fallback(e.Rng())
			}
			e.ResolveGeneratedChallenge(s, res)
			return nil
		})
		if err != nil {
			log.Printf("room %s: delivering challenge: %v", r.Code, err)
		}
		if genErr != nil {
			log.Printf("room %s: challenge generator failed, used fallback: %v", r.Code, genErr)
		}
	}()
}

type stateMessage struct {
	Type    string          `json:"type"`
	Session *models.Session `json:"session"`
}

// snapshot builds the broadcast payload, hiding the portal map while the fog
// of war is active.
func (r *Room) snapshot() stateMessage {
	s := r.session
	if !s.PortalsHiddenUntil.IsZero() && time.Now().Before(s.PortalsHiddenUntil) {
		cp := *s
		cp.Portals = nil
		return stateMessage{Type: "state", Session: &cp}
	}
	return stateMessage{Type: "state", Session: s}
}

func (r *Room) broadcast() {
	msg := r.snapshot()
	for sub := range r.subs {
		if err := sub.Send(msg); err != nil {
			log.Printf("room %s: dropping slow subscriber: %v", r.Code, err)
			sub.conn.Close()
			delete(r.subs, sub)
		}
	}
}
