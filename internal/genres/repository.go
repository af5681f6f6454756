package genres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, genre *Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	GetBySlug(ctx context.Context, slug string) (*Genre, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Genre, error)
	GetAll(ctx context.Context) ([]Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, genre *Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Genre, error) {
	var genre Genre
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Genre, error) {
	var genre Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Genre, error) {
	var genres []Genre
	if len(ids) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error
	return genres, err
}

func (r *repository) GetAll(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	err := r.db.WithContext(ctx).Order("text ASC").Find(&genres).Error
	return genres, err
}

func (r *repository) Update(ctx context.Context, genre *Genre) error {
	return r.db.WithContext(ctx).Save(genre).Error
}

// Delete detaches the genre from every movie before removing it.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movie_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Genre{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
