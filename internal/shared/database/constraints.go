package database

import (
	"gorm.io/gorm"
)

// constraintStatements are idempotent; they run after every AutoMigrate.
var constraintStatements = []string{
	// Week listing and per-movie session lookups
	`CREATE INDEX IF NOT EXISTS idx_sessions_movie_start ON sessions (movie_id, start_at)`,

	// History joins in both directions
	`CREATE INDEX IF NOT EXISTS idx_customer_sessions_session ON customer_sessions (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movie_genres_genre ON movie_genres (genre_id)`,

	// Emails are compared case-insensitively
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email_lower ON customers (LOWER(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`,
}

// MigrateConstraints adds indexes AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	for _, statement := range constraintStatements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}
