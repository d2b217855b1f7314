package game

const (
	// MaxPlayers is the most players a room can hold
	MaxPlayers = 8

	// MinPlayers is the minimum number of players required to start a game
	MinPlayers = 2

	// GiveUpCap is the most times one player may give up on challenges
	GiveUpCap = 3

	// DiceSides is the range of a single die roll
	DiceSides = 6

	// DoubledRollCap bounds a doubled roll
	DoubledRollCap = 12

	// RoleChoiceCount is how many roles a shrine offers
	RoleChoiceCount = 3

	// LogLimit bounds the session history feed
	LogLimit = 50

	// ChatLimit bounds the chat feed
	ChatLimit = 50

	// ChatMessageLimit bounds a single chat message
	ChatMessageLimit = 200

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GeneratingPlaceholder is shown while the external generator is writing
const GeneratingPlaceholder = "The spirits are composing your challenge..."
