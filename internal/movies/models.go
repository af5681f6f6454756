package movies

import (
	"time"

	"movieapp/internal/genres"

	"github.com/google/uuid"
)

type Movie struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string         `json:"title" gorm:"not null;size:100;index"`
	AgeRestriction  string         `json:"age_restriction" gorm:"not null;size:10"`
	ReleaseDate     time.Time      `json:"release_date" gorm:"type:date;not null"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Genres          []genres.Genre `json:"genres" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// Accessors used by the recommender.

func (m Movie) GetID() uuid.UUID { return m.ID }

func (m Movie) GetAgeRestriction() string { return m.AgeRestriction }

func (m Movie) GenreIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(m.Genres))
	for i, g := range m.Genres {
		ids[i] = g.ID
	}
	return ids
}

func (m *Movie) ToResponse() MovieResponse {
	resp := MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		AgeRestriction:  m.AgeRestriction,
		ReleaseDate:     m.ReleaseDate.Format(time.DateOnly),
		DurationMinutes: m.DurationMinutes,
		Genres:          make([]genres.GenreResponse, 0, len(m.Genres)),
	}
	for i := range m.Genres {
		resp.Genres = append(resp.Genres, m.Genres[i].ToResponse())
	}
	return resp
}

// ToResponses maps a slice of movies to their API shape.
func ToResponses(list []Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToResponse())
	}
	return out
}
