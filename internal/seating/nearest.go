package seating

import "math"

// nearestSeat returns the index of the available seat in pool closest to from,
// or -1 when there is none. On equal distances the earlier seat wins.
func nearestSeat(from Seat, pool []Seat) int {
	best := -1
	minDistance := math.MaxFloat64

	for i, seat := range pool {
		if !seat.IsAvailable {
			continue
		}
		if distance := from.DistanceTo(seat); distance < minDistance {
			best = i
			minDistance = distance
		}
	}

	return best
}
