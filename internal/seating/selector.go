package seating

import (
	"cmp"
	"slices"
)

// runState tracks the greedy scan over preferred seats.
type runState int

const (
	noRun runState = iota // nothing accepted yet
	inRun                 // lastSeat holds the most recently accepted seat
)

// Select chooses up to n seats out of available.
//
// Seats are stably sorted by centrality and scanned for a run of n adjacent
// preferred seats. A seat that does not continue the current run starts a new
// one on its own. If the scan runs out of preferred seats before the run is
// long enough, the selection is extended with the nearest remaining seat to
// the last one picked until n seats are chosen or none are left.
//
// The result may be shorter than n; n <= 0 gives an empty selection.
// available is not modified.
func Select(available []Seat, n int) []Seat {
	sorted := slices.Clone(available)
	slices.SortStableFunc(sorted, func(a, b Seat) int {
		return cmp.Compare(a.Centrality(), b.Centrality())
	})

	selection, lastSeat, state := preferredRun(sorted, n)
	if len(selection) >= n {
		return selection
	}
	return fillNearest(sorted, selection, lastSeat, state, n)
}

func preferredRun(sorted []Seat, n int) ([]Seat, Seat, runState) {
	var (
		selection = []Seat{}
		lastSeat  Seat
		state     = noRun
		runCount  int
	)

	for _, seat := range sorted {
		if !seat.IsPreferred() {
			continue
		}
		if runCount >= n {
			break
		}

		if state == noRun || seat.AdjacentTo(lastSeat) {
			selection = append(selection, seat)
			runCount++
		} else {
			// run broke: the breaking seat alone starts the next one
			selection = []Seat{seat}
			runCount = 1
		}
		lastSeat = seat
		state = inRun
	}

	return selection, lastSeat, state
}

// fillNearest grows selection one nearest seat at a time. Without an accepted
// seat the search starts from the center of the grid.
func fillNearest(sorted, selection []Seat, lastSeat Seat, state runState, n int) []Seat {
	pool := make([]Seat, 0, len(sorted))
	for _, seat := range sorted {
		if !containsPosition(selection, seat) {
			pool = append(pool, seat)
		}
	}

	anchor, picked := lastSeat, state == inRun
	if !picked {
		anchor = Center()
	}

	for len(selection) < n {
		if picked {
			pool = removePosition(pool, anchor)
		}

		idx := nearestSeat(anchor, pool)
		if idx < 0 {
			break
		}

		next := pool[idx]
		selection = append(selection, next)
		pool = slices.Delete(pool, idx, idx+1)
		anchor, picked = next, true
	}

	return selection
}

func containsPosition(seats []Seat, target Seat) bool {
	return slices.ContainsFunc(seats, target.SamePosition)
}

func removePosition(seats []Seat, target Seat) []Seat {
	if idx := slices.IndexFunc(seats, target.SamePosition); idx >= 0 {
		return slices.Delete(seats, idx, idx+1)
	}
	return seats
}
