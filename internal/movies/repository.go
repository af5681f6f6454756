package movies

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter is one equality condition on an allow-listed movie column.
type Filter struct {
	Column string
	Value  interface{}
}

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetAll(ctx context.Context, page, limit int) ([]Movie, int64, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountSessions(ctx context.Context, id uuid.UUID) (int64, error)

	Search(ctx context.Context, filters []Filter) ([]Movie, error)
	GetScreenedBetween(ctx context.Context, from, to time.Time) ([]Movie, error)
	GetWatchedByCustomer(ctx context.Context, customerID uuid.UUID) ([]Movie, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Preload("Genres").Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) GetAll(ctx context.Context, page, limit int) ([]Movie, int64, error) {
	var movies []Movie
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Movie{})
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Genres").
		Order("title ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&movies).Error

	return movies, totalCount, err
}

// Update saves scalar fields and replaces the genre set.
func (r *repository) Update(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(movie).Error; err != nil {
			return err
		}
		return tx.Model(movie).Association("Genres").Replace(movie.Genres)
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movie_genres WHERE movie_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Movie{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) CountSessions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("sessions").Where("movie_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Search(ctx context.Context, filters []Filter) ([]Movie, error) {
	var movies []Movie

	db := r.db.WithContext(ctx).Model(&Movie{}).Preload("Genres")
	for _, f := range filters {
		if f.Column == "genre" {
			db = db.Where("movies.id IN (?)", r.db.Table("movie_genres").
				Select("movie_genres.movie_id").
				Joins("JOIN genres g ON g.id = movie_genres.genre_id").
				Where("g.slug = ?", f.Value))
			continue
		}
		// Column names come from the service allow-list only
		db = db.Where(f.Column+" = ?", f.Value)
	}

	err := db.Order("title ASC").Find(&movies).Error
	return movies, err
}

// GetScreenedBetween returns movies with at least one session starting in [from, to].
func (r *repository) GetScreenedBetween(ctx context.Context, from, to time.Time) ([]Movie, error) {
	var movies []Movie

	screened := r.db.Table("sessions").
		Select("sessions.movie_id").
		Where("sessions.start_at BETWEEN ? AND ?", from, to)

	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("movies.id IN (?)", screened).
		Order("title ASC").
		Find(&movies).Error

	return movies, err
}

// GetWatchedByCustomer returns the movies of every session in the customer's history.
func (r *repository) GetWatchedByCustomer(ctx context.Context, customerID uuid.UUID) ([]Movie, error) {
	var movies []Movie

	watched := r.db.Table("sessions").
		Select("sessions.movie_id").
		Joins("JOIN customer_sessions ON customer_sessions.session_id = sessions.id").
		Where("customer_sessions.customer_id = ?", customerID)

	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("movies.id IN (?)", watched).
		Order("title ASC").
		Find(&movies).Error

	return movies, err
}
