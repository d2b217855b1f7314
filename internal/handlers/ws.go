package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
	"github.com/aaronzipp/serpents-and-stairways/internal/room"
)

// intentMessage is one client request over the websocket
type intentMessage struct {
	Type      string `json:"type"`
	CardIndex int    `json:"cardIndex"`
	TargetID  string `json:"targetId"`
	Role      string `json:"role"`
	Text      string `json:"text"`
}

type wsError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleWS upgrades to a websocket, streams snapshots and accepts intents
func (ctx *Context) HandleWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rm, ok := ctx.Rooms.Get(code)
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	playerID, err := ctx.authorize(r, code)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := ctx.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade for room %s: %v", code, err)
		return
	}

	sub, err := rm.Subscribe(conn)
	if err != nil {
		conn.Close()
		return
	}
	defer func() {
		rm.Unsubscribe(sub)
		ctx.reapWhenIdle(rm)
	}()

	for {
		var msg intentMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := ctx.dispatch(rm, playerID, msg); err != nil {
			if err == room.ErrRoomClosed {
				return
			}
			sub.Send(wsError{Type: "error", Message: err.Error()})
		}
	}
}

// dispatch routes one intent into the room actor
func (ctx *Context) dispatch(rm *room.Room, playerID string, msg intentMessage) error {
	switch msg.Type {
	case "start":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.Start(s, playerID)
		})
	case "reset":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.Reset(s, playerID)
		})
	case "roll":
		return rm.Roll(playerID)
	case "play_card":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.PlayCard(s, playerID, msg.CardIndex, msg.TargetID)
		})
	case "complete_challenge":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.CompleteChallenge(s, playerID)
		})
	case "fail_challenge":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.FailChallenge(s, playerID)
		})
	case "skip_challenge_with_card":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.SkipChallengeWithCard(s, playerID, msg.CardIndex)
		})
	case "dismiss_treasure":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.DismissTreasure(s, playerID)
		})
	case "select_role":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.SelectRole(s, playerID, models.Role(msg.Role))
		})
	case "say":
		return rm.Update(func(e *game.Engine, s *models.Session) error {
			return e.Say(s, playerID, msg.Text)
		})
	default:
		return game.ErrUnknownIntent
	}
}
