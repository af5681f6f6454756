package sessions

import (
	"time"

	"movieapp/internal/languages"
	"movieapp/internal/movies"

	"github.com/google/uuid"
)

// Session is one screening of a movie in a hall.
type Session struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MovieID    uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	LanguageID uuid.UUID `json:"language_id" gorm:"type:uuid;not null;index"`
	HallNr     string    `json:"hall_nr" gorm:"not null;size:10"`
	StartAt    time.Time `json:"start_at" gorm:"not null;index"`
	Price      float64   `json:"price" gorm:"type:decimal(8,2);not null;check:price >= 0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Movie         *movies.Movie       `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT;"`
	Language      *languages.Language `json:"language,omitempty" gorm:"foreignKey:LanguageID;constraint:OnDelete:RESTRICT;"`
	OccupiedSeats []OccupiedSeat      `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
}

func (Session) TableName() string {
	return "sessions"
}

// OccupiedSeat marks one seat of a session as taken.
type OccupiedSeat struct {
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;primaryKey"`
	RowNr     int       `json:"row_nr" gorm:"primaryKey;check:row_nr BETWEEN 1 AND 9"`
	SeatNr    int       `json:"seat_nr" gorm:"primaryKey;check:seat_nr BETWEEN 1 AND 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (OccupiedSeat) TableName() string {
	return "session_occupied_seats"
}

func (s *Session) ToResponse() SessionResponse {
	resp := SessionResponse{
		ID:         s.ID.String(),
		MovieID:    s.MovieID.String(),
		LanguageID: s.LanguageID.String(),
		HallNr:     s.HallNr,
		StartAt:    s.StartAt,
		Price:      s.Price,
	}
	if s.Movie != nil {
		resp.MovieTitle = s.Movie.Title
	}
	if s.Language != nil {
		resp.Language = s.Language.Text
	}
	return resp
}
