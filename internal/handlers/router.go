package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route onto a gorilla mux
func NewRouter(ctx *Context) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/rooms", ctx.HandleCreateRoom).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/join", ctx.HandleJoinRoom).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/leave", ctx.HandleLeaveRoom).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/kick", ctx.HandleKick).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/bots", ctx.HandleAddBot).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/stakes", ctx.HandleUpdateStakes).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/stakes/accept", ctx.HandleAcceptStakes).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/rules", ctx.HandleUpdateRules).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}/qr", ctx.HandleRoomQR).Methods(http.MethodGet)

	r.HandleFunc("/ws/{code}", ctx.HandleWS).Methods(http.MethodGet)

	r.HandleFunc("/leaderboard", ctx.HandleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/health", ctx.HandleHealth).Methods(http.MethodGet)

	return r
}
