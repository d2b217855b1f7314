package models

// EffectType is the closed set of card effects
type EffectType string

const (
	EffectCurseBack    EffectType = "curse_back"
	EffectSkipTarget   EffectType = "skip_target"
	EffectDoubleDice   EffectType = "double_dice"
	EffectTeleport     EffectType = "teleport"
	EffectShield       EffectType = "shield"
	EffectStealCard    EffectType = "steal_card"
	EffectSwapPosition EffectType = "swap_position"
	EffectExtraTurn    EffectType = "extra_turn"
	EffectRocket       EffectType = "rocket"
	EffectBomb         EffectType = "bomb"
	EffectMagicDice    EffectType = "magic_dice"
	EffectMagnet       EffectType = "magnet"
)

// TargetType says whether a card is played on its owner or on another player
type TargetType string

const (
	TargetSelf  TargetType = "self"
	TargetOther TargetType = "other"
)

// Card is a collectible card in a player's hand
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Emoji       string     `json:"emoji"`
	Description string     `json:"description"`
	Effect      EffectType `json:"effectType"`
	Target      TargetType `json:"targetType"`
}

// CardEffect records the most recent card play for client-side playback
type CardEffect struct {
	CasterID string     `json:"casterId"`
	TargetID string     `json:"targetId"`
	Effect   EffectType `json:"effectType"`
	Blocked  bool       `json:"blocked"`
	// BlockedBy is "shield" or "tank" when Blocked is set
	BlockedBy string `json:"blockedBy,omitempty"`
}
