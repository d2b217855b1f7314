package challenge

import (
	"github.com/aaronzipp/serpents-and-stairways/internal/board"
	"github.com/aaronzipp/serpents-and-stairways/internal/models"
)

// fallbackTable is served whenever the external generator fails or times out
var fallbackTable = []string{
	"Hum your favorite song until the other players guess it.",
	"Speak only in rhymes until your next turn.",
	"Do your best impression of another player at the table.",
	"Balance something on your head until your next roll.",
	"Tell a two-sentence story about the last snake you met.",
	"Say the alphabet backwards from M.",
	"Compliment every other player in one breath.",
	"Invent a victory dance and perform it right now.",
	"Narrate your next move like a sports commentator.",
	"Keep a completely straight face while the others try to make you laugh.",
}

// DefaultPenalty is applied when no penalty arrives with a challenge
func DefaultPenalty() models.Penalty {
	return models.Penalty{Type: models.PenaltySteps, Value: 3}
}

// Fallback picks a pre-written challenge with the default penalty
func Fallback(rng board.Rand) Result {
	return Result{
		Text:    fallbackTable[rng.Intn(len(fallbackTable))],
		Penalty: DefaultPenalty(),
	}
}
