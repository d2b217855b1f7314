package board

const (
	minPortalsPerKind  = 5
	portalKindSpread   = 3  // 5-7 of each kind
	minPortalLength    = 10 // cells
	portalLengthSpread = 30 // 10-39 cells
	placementAttempts  = 50
)

// GeneratePortals produces a fresh snake/ladder layout: 5-7 ladders and 5-7
// snakes, no endpoint shared between portals and none touching cell 1 or 100.
// A portal that cannot be placed within its attempt budget is skipped, so the
// map may legitimately hold fewer than the target count.
func GeneratePortals(rng Rand) map[int]int {
	portals := make(map[int]int)
	used := make(map[int]bool)

	place := func(start, end int) bool {
		if start <= MinCell || start >= MaxCell || end <= MinCell || end >= MaxCell {
			return false
		}
		if start == end || used[start] || used[end] {
			return false
		}
		portals[start] = end
		used[start] = true
		used[end] = true
		return true
	}

	ladders := minPortalsPerKind + rng.Intn(portalKindSpread)
	for i := 0; i < ladders; i++ {
		for try := 0; try < placementAttempts; try++ {
			start := 2 + rng.Intn(80) // [2,81]
			length := minPortalLength + rng.Intn(portalLengthSpread)
			if place(start, start+length) {
				break
			}
		}
	}

	snakes := minPortalsPerKind + rng.Intn(portalKindSpread)
	for i := 0; i < snakes; i++ {
		for try := 0; try < placementAttempts; try++ {
			start := 10 + rng.Intn(90) // [10,99]
			length := minPortalLength + rng.Intn(portalLengthSpread)
			if place(start, start-length) {
				break
			}
		}
	}

	return portals
}
