// Package cards holds the card catalog and applies card effects to a session.
package cards

import (
	"github.com/google/uuid"

	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// HandLimit caps how many cards a player can hold
const HandLimit = 6

// catalog is the closed set of card templates; Draw stamps copies with ids.
var catalog = []models.Card{
	{Name: "Curse of the Crawl", Emoji: "🐌", Description: "Drag another player 3 cells back", Effect: models.EffectCurseBack, Target: models.TargetOther},
	{Name: "Frozen Feet", Emoji: "🧊", Description: "Another player skips their next turn", Effect: models.EffectSkipTarget, Target: models.TargetOther},
	{Name: "Loaded Dice", Emoji: "🎲", Description: "Your next roll counts double", Effect: models.EffectDoubleDice, Target: models.TargetSelf},
	{Name: "Blink Step", Emoji: "✨", Description: "Teleport yourself 5 cells ahead", Effect: models.EffectTeleport, Target: models.TargetSelf},
	{Name: "Tortoise Shell", Emoji: "🛡️", Description: "Block the next snake or hostile card", Effect: models.EffectShield, Target: models.TargetSelf},
	{Name: "Sticky Fingers", Emoji: "🫳", Description: "Steal a random card from another player", Effect: models.EffectStealCard, Target: models.TargetOther},
	{Name: "Switcheroo", Emoji: "🔁", Description: "Swap places with another player", Effect: models.EffectSwapPosition, Target: models.TargetOther},
	{Name: "Second Wind", Emoji: "🌬️", Description: "Take another turn after this one", Effect: models.EffectExtraTurn, Target: models.TargetSelf},
	{Name: "Pocket Rocket", Emoji: "🚀", Description: "Blast yourself 7 cells ahead", Effect: models.EffectRocket, Target: models.TargetSelf},
	{Name: "Cartoon Bomb", Emoji: "💣", Description: "Knock another player 5 cells back", Effect: models.EffectBomb, Target: models.TargetOther},
	{Name: "Trick Die", Emoji: "🪄", Description: "A suspiciously lucky die", Effect: models.EffectMagicDice, Target: models.TargetSelf},
	{Name: "Magnet Trap", Emoji: "🧲", Description: "Pull another player to just behind you", Effect: models.EffectMagnet, Target: models.TargetOther},
}

// Catalog returns a copy of the card templates
func Catalog() []models.Card {
	out := make([]models.Card, len(catalog))
	copy(out, catalog)
	return out
}

// Draw picks a uniformly random card from the catalog and gives it an id
func Draw(rng board.Rand) models.Card {
	card := catalog[rng.Intn(len(catalog))]
	card.ID = uuid.New().String()
	return card
}
