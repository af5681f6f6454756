package movies

import "github.com/google/uuid"

// MovieRequest is used for both create and full update.
type MovieRequest struct {
	Title           string      `json:"title" binding:"required,min=1,max=100"`
	AgeRestriction  string      `json:"age_restriction" binding:"required,max=10"`
	ReleasedOn      string      `json:"release_date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int         `json:"duration_minutes" binding:"required,min=1,max=600"`
	GenreIDs        []uuid.UUID `json:"genre_ids"`
}

type MovieListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
