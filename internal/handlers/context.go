// Package handlers exposes the HTTP and websocket surface over the room
// actors.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aaronzipp/serpents-and-stairways/internal/auth"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/leaderboard"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
	"github.com/aaronzipp/serpents-and-stairways/internal/room"
	"github.com/aaronzipp/serpents-and-stairways/internal/store"
)

// Leaderboard is what the handlers need from the win store
type Leaderboard interface {
	RecordWin(ctx context.Context, name, avatar, roomCode string) error
	TopN(ctx context.Context, n int) ([]leaderboard.Entry, error)
}

// Context carries shared dependencies for all handlers
type Context struct {
	Rooms     *store.RoomStore
	Tokens    *auth.Tokens
	Generator challenge.Generator
	Wins      Leaderboard // nil when the leaderboard db is unavailable

	PublicURL   string
	FogDuration time.Duration
	BotDelay    time.Duration

	// IdleGrace is how long a room may sit with no websockets attached
	// before it is reaped
	IdleGrace time.Duration

	upgrader websocket.Upgrader
}

const defaultIdleGrace = 2 * time.Minute

// NewContext wires the handler context
func NewContext(rooms *store.RoomStore, tokens *auth.Tokens, gen challenge.Generator, wins Leaderboard, publicURL string, fog, botDelay time.Duration) *Context {
	return &Context{
		Rooms:       rooms,
		Tokens:      tokens,
		Generator:   gen,
		Wins:        wins,
		PublicURL:   strings.TrimRight(publicURL, "/"),
		FogDuration: fog,
		BotDelay:    botDelay,
		IdleGrace:   defaultIdleGrace,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// newRoom builds a session and starts its actor
func (ctx *Context) newRoom(theme string) *room.Room {
	code := ctx.Rooms.UniqueCode()
	engine := game.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())), nil)
	session := game.NewSession(code, theme, ctx.FogDuration)

	var wins room.WinSink
	if ctx.Wins != nil {
		wins = ctx.Wins
	}
	rm := room.New(code, engine, session, ctx.Generator, wins, ctx.BotDelay)
	ctx.Rooms.Set(code, rm)
	return rm
}

// reapIfEmpty stops and forgets a room once its last player has left
func (ctx *Context) reapIfEmpty(rm *room.Room) {
	empty := false
	rm.View(func(s *models.Session) error {
		empty = len(s.Players) == 0
		return nil
	})
	if empty {
		rm.Stop()
		ctx.Rooms.Delete(rm.Code)
		log.Printf("Reaped empty room %s", rm.Code)
	}
}

// reapWhenIdle forgets a room whose last websocket detached and where nobody
// reconnects within the grace period. Players who never post /leave would
// otherwise keep their room alive forever.
func (ctx *Context) reapWhenIdle(rm *room.Room) {
	if rm.SubscriberCount() > 0 {
		return
	}
	time.AfterFunc(ctx.IdleGrace, func() {
		if rm.SubscriberCount() > 0 {
			return
		}
		if _, ok := ctx.Rooms.Get(rm.Code); !ok {
			return
		}
		rm.Stop()
		ctx.Rooms.Delete(rm.Code)
		log.Printf("Reaped idle room %s", rm.Code)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps engine sentinels onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNoSuchPlayer):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrGameNotRunning),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrPendingInteraction),
		errors.Is(err, game.ErrNoPendingInteraction),
		errors.Is(err, game.ErrGiveUpCapReached):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidCard),
		errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, game.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrRoomClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// authorize extracts and verifies the player token for a room. The token
// travels as a bearer header for REST calls and as ?token= on the websocket.
func (ctx *Context) authorize(r *http.Request, roomCode string) (string, error) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		header := r.Header.Get("Authorization")
		raw = strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			raw = ""
		}
	}
	if raw == "" {
		return "", errors.New("missing token")
	}
	claims, err := ctx.Tokens.Verify(raw)
	if err != nil {
		return "", err
	}
	if claims.RoomCode != roomCode {
		return "", errors.New("token is for a different room")
	}
	return claims.PlayerID, nil
}
