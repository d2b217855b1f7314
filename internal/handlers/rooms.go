package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/aaronzipp/serpents-and-stairways/internal/game"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
	"github.com/aaronzipp/serpents-and-stairways/internal/room"
)

type joinResponse struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

// HandleCreateRoom creates a room and seats the caller as host
func (ctx *Context) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
		Theme  string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	rm := ctx.newRoom(strings.TrimSpace(req.Theme))

	var player *models.Player
	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		var joinErr error
		player, joinErr = e.Join(s, req.Name, req.Avatar, false)
		return joinErr
	})
	if err != nil {
		ctx.reapIfEmpty(rm)
		writeError(w, err)
		return
	}

	token, err := ctx.Tokens.Issue(rm.Code, player.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("Created room %s, host %s", rm.Code, player.Name)
	writeJSON(w, http.StatusCreated, joinResponse{RoomCode: rm.Code, PlayerID: player.ID, Token: token})
}

// HandleJoinRoom seats a new player in an existing waiting room
func (ctx *Context) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	rm, ok := ctx.Rooms.Get(mux.Vars(r)["code"])
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	var player *models.Player
	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		var joinErr error
		player, joinErr = e.Join(s, req.Name, req.Avatar, false)
		return joinErr
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := ctx.Tokens.Issue(rm.Code, player.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("Player %s joined room %s", player.Name, rm.Code)
	writeJSON(w, http.StatusOK, joinResponse{RoomCode: rm.Code, PlayerID: player.ID, Token: token})
}

// HandleLeaveRoom removes the caller from the room
func (ctx *Context) HandleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		return e.Leave(s, playerID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	ctx.reapIfEmpty(rm)
	w.WriteHeader(http.StatusNoContent)
}

// HandleKick lets the host remove another player
func (ctx *Context) HandleKick(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	var req struct {
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		return e.Kick(s, playerID, req.TargetID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddBot lets the host seat a bot
func (ctx *Context) HandleAddBot(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		_, botErr := e.AddBot(s, playerID)
		return botErr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateStakes sets what the game is played for
func (ctx *Context) HandleUpdateStakes(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	var req struct {
		Stakes string `json:"stakes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		return e.UpdateStakes(s, playerID, req.Stakes)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAcceptStakes records the caller's agreement
func (ctx *Context) HandleAcceptStakes(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		return e.AcceptStakes(s, playerID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateRules changes house rules before the game starts
func (ctx *Context) HandleUpdateRules(w http.ResponseWriter, r *http.Request) {
	rm, playerID, ok := ctx.roomAndPlayer(w, r)
	if !ok {
		return
	}

	var req models.Rules
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	err := rm.Update(func(e *game.Engine, s *models.Session) error {
		return e.UpdateRules(s, playerID, req)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRoomQR serves a QR code that joins the room
func (ctx *Context) HandleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if !ctx.Rooms.Exists(code) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(ctx.PublicURL+"/?join="+code, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// roomAndPlayer resolves the room from the path and the player from the token
func (ctx *Context) roomAndPlayer(w http.ResponseWriter, r *http.Request) (*room.Room, string, bool) {
	code := mux.Vars(r)["code"]
	rm, ok := ctx.Rooms.Get(code)
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return nil, "", false
	}
	playerID, err := ctx.authorize(r, code)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, "", false
	}
	return rm, playerID, true
}
