package sessions

import (
	"time"

	"github.com/google/uuid"
)

// SessionRequest is used for both create and full update.
type SessionRequest struct {
	MovieID    uuid.UUID `json:"movie_id" binding:"required"`
	LanguageID uuid.UUID `json:"language_id" binding:"required"`
	HallNr     string    `json:"hall_nr" binding:"required,max=10"`
	StartAt    time.Time `json:"start_at" binding:"required"`
	Price      float64   `json:"price" binding:"min=0"`
}

type SessionListQuery struct {
	MovieID string `form:"movie_id" binding:"omitempty,uuid"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SeatsQuery is the query of the seat suggestion endpoint.
type SeatsQuery struct {
	NumOfTickets int `form:"numOfTickets" binding:"required,min=1,max=90"`
}

type SeatPosition struct {
	RowNr  int `json:"row_nr" binding:"required,min=1,max=9"`
	SeatNr int `json:"seat_nr" binding:"required,min=1,max=10"`
}

// OccupancyRequest marks seats taken and frees others in one call.
type OccupancyRequest struct {
	Occupied []SeatPosition `json:"occupied" binding:"omitempty,dive"`
	Freed    []SeatPosition `json:"freed" binding:"omitempty,dive"`
}
