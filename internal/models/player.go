package models

// Role is a per-player class granting a passive ability
type Role string

const (
	RoleNone    Role = ""
	RoleNinja   Role = "ninja"
	RoleJester  Role = "jester"
	RoleBuilder Role = "builder"
	RoleTank    Role = "tank"
	RoleMage    Role = "mage"
)

// AllRoles lists every selectable role
var AllRoles = []Role{RoleNinja, RoleJester, RoleBuilder, RoleTank, RoleMage}

// Player represents a player in a session. Slice order in Session.Players is
// join order, which is also turn order.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Position int    `json:"position"`
	IsHost   bool   `json:"isHost"`
	IsBot    bool   `json:"isBot"`
	Role     Role   `json:"role,omitempty"`
	Cards    []Card `json:"cards"`

	HasShield    bool `json:"hasShield"`
	DoubleDice   bool `json:"doubleDice"`
	ExtraTurn    bool `json:"extraTurn"`
	MagicDice    bool `json:"magicDice"`
	SkippedTurns int  `json:"skippedTurns"`
	GiveUpCount  int  `json:"giveUpCount"`
}
