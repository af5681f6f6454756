package movies

import "movieapp/internal/genres"

type MovieResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	AgeRestriction  string                 `json:"age_restriction"`
	ReleaseDate     string                 `json:"release_date"`
	DurationMinutes int                    `json:"duration_minutes"`
	Genres          []genres.GenreResponse `json:"genres"`
}

type PaginatedMovies struct {
	Movies     []MovieResponse `json:"movies"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
