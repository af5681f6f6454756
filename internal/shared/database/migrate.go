package database

import (
	"movieapp/internal/customers"
	"movieapp/internal/genres"
	"movieapp/internal/languages"
	"movieapp/internal/movies"
	"movieapp/internal/sessions"
	"movieapp/internal/users"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, join tables included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&genres.Genre{},
		&languages.Language{},
		&movies.Movie{},
		&sessions.Session{},
		&sessions.OccupiedSeat{},
		&customers.Customer{},
	)
}
