// Package board implements the 100-cell board: movement resolution, cell
// classification and portal map generation. Everything here is pure and takes
// its randomness through the Rand interface so tests can force outcomes.
package board

// Board limits
const (
	MinCell = 1
	MaxCell = 100
)

// Rand is the random source the board code draws from
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// CellKind classifies what landing on a cell triggers
type CellKind int

const (
	CellPlain CellKind = iota
	CellChallenge
	CellTreasure
	CellShrine
)

func (k CellKind) String() string {
	switch k {
	case CellChallenge:
		return "challenge"
	case CellTreasure:
		return "treasure"
	case CellShrine:
		return "shrine"
	default:
		return "plain"
	}
}

// Classify maps a cell number to its kind. Shrines sit at the quarter marks,
// challenges on multiples of 7, treasure on multiples of 13. The first and
// last cells are always plain.
func Classify(cell int) CellKind {
	if cell <= MinCell || cell >= MaxCell {
		return CellPlain
	}
	switch {
	case cell == 25 || cell == 50 || cell == 75:
		return CellShrine
	case cell%7 == 0:
		return CellChallenge
	case cell%13 == 0:
		return CellTreasure
	}
	return CellPlain
}
