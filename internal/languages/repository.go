package languages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, language *Language) error
	GetByID(ctx context.Context, id uuid.UUID) (*Language, error)
	GetBySlug(ctx context.Context, slug string) (*Language, error)
	GetAll(ctx context.Context) ([]Language, error)
	Update(ctx context.Context, language *Language) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountSessions(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, language *Language) error {
	return r.db.WithContext(ctx).Create(language).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Language, error) {
	var language Language
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&language).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Language, error) {
	var language Language
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&language).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Language, error) {
	var languages []Language
	err := r.db.WithContext(ctx).Order("text ASC").Find(&languages).Error
	return languages, err
}

func (r *repository) Update(ctx context.Context, language *Language) error {
	return r.db.WithContext(ctx).Save(language).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Language{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountSessions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("sessions").Where("language_id = ?", id).Count(&count).Error
	return count, err
}
