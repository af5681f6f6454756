package sessions

import "time"

type SessionResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	LanguageID string    `json:"language_id"`
	Language   string    `json:"language,omitempty"`
	HallNr     string    `json:"hall_nr"`
	StartAt    time.Time `json:"start_at"`
	Price      float64   `json:"price"`
}

type PaginatedSessions struct {
	Sessions   []SessionResponse `json:"sessions"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
