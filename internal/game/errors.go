package game

import "errors"

// Illegal-action errors. These surface to the acting player; the engine
// enforces them server-side regardless of what the UI disables.
var (
	ErrRoomFull             = errors.New("room is full")
	ErrAlreadyStarted       = errors.New("game already started")
	ErrGameNotRunning       = errors.New("game is not running")
	ErrNotHost              = errors.New("only the host can do that")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrNoSuchPlayer         = errors.New("player not in this room")
	ErrNotEnoughPlayers     = errors.New("not enough players to start")
	ErrPendingInteraction   = errors.New("resolve the pending interaction first")
	ErrNoPendingInteraction = errors.New("nothing to resolve")
	ErrGiveUpCapReached     = errors.New("no more give-ups left")
	ErrInvalidCard          = errors.New("invalid card")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrInvalidRole          = errors.New("role not on offer")
	ErrUnknownIntent        = errors.New("unknown intent")
)
