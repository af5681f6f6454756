// Package seating picks the best block of seats in a session's hall.
//
// Every hall shares one fixed layout of NumRows rows with SeatsPerRow seats
// each. Seats are ranked by their Manhattan distance to the middle of the
// grid, groups are kept side by side where possible and a nearest-seat
// search fills whatever the preferred block could not.
package seating

import "math"

// Hall layout
const (
	NumRows     = 9
	SeatsPerRow = 10

	// OptimalDistance is the highest centrality score a preferred seat may have.
	OptimalDistance = 5
	// MinRowFromScreen is the first row far enough from the screen to be preferred.
	MinRowFromScreen = 2
)

const (
	centralRow  = NumRows / 2
	centralSeat = SeatsPerRow / 2
)

// Seat is one position of a session's seat grid.
type Seat struct {
	RowNr       int  `json:"row_nr"`
	SeatNr      int  `json:"seat_nr"`
	IsAvailable bool `json:"is_available"`
}

// Center is the seat the centrality score is measured from.
func Center() Seat {
	return Seat{RowNr: centralRow, SeatNr: centralSeat}
}

// Centrality is the Manhattan distance from the seat to the center of the grid.
func (s Seat) Centrality() int {
	return abs(s.RowNr-centralRow) + abs(s.SeatNr-centralSeat)
}

// IsPreferred reports whether the seat is central enough and not in the front row.
func (s Seat) IsPreferred() bool {
	return s.Centrality() <= OptimalDistance && s.RowNr >= MinRowFromScreen
}

// AdjacentTo reports whether both seats sit next to each other in the same row.
func (s Seat) AdjacentTo(other Seat) bool {
	return s.RowNr == other.RowNr && abs(s.SeatNr-other.SeatNr) == 1
}

// DistanceTo is the Euclidean distance between two seat positions.
func (s Seat) DistanceTo(other Seat) float64 {
	dx := float64(s.RowNr - other.RowNr)
	dy := float64(s.SeatNr - other.SeatNr)
	return math.Sqrt(dx*dx + dy*dy)
}

// SamePosition compares row and seat number, ignoring availability.
func (s Seat) SamePosition(other Seat) bool {
	return s.RowNr == other.RowNr && s.SeatNr == other.SeatNr
}

// InGrid reports whether the coordinates exist in the hall layout.
func InGrid(rowNr, seatNr int) bool {
	return rowNr >= 1 && rowNr <= NumRows && seatNr >= 1 && seatNr <= SeatsPerRow
}

// Grid builds the full hall in row-major order. occupied may be nil.
func Grid(occupied func(rowNr, seatNr int) bool) []Seat {
	seats := make([]Seat, 0, NumRows*SeatsPerRow)
	for row := 1; row <= NumRows; row++ {
		for seat := 1; seat <= SeatsPerRow; seat++ {
			taken := occupied != nil && occupied(row, seat)
			seats = append(seats, Seat{RowNr: row, SeatNr: seat, IsAvailable: !taken})
		}
	}
	return seats
}

// Available keeps the available seats, preserving order.
func Available(seats []Seat) []Seat {
	result := make([]Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.IsAvailable {
			result = append(result, seat)
		}
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
