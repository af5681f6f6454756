package auth

import (
	"context"
	"errors"

	"movieapp/internal/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository stores back-office accounts. Lookups report a missing account as ErrUserNotFound.
type Repository interface {
	// Insert fails with ErrUserAlreadyExists when the email is already registered.
	Insert(ctx context.Context, user *users.User) error
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByID(ctx context.Context, id string) (*users.User, error)
	SetPassword(ctx context.Context, id, hash string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert relies on the unique email index instead of a separate existence check,
// so two concurrent registrations cannot both succeed.
func (r *repository) Insert(ctx context.Context, user *users.User) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(user)
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return ErrUserAlreadyExists
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *repository) FindByID(ctx context.Context, id string) (*users.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) findOne(ctx context.Context, query string, args ...interface{}) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where(query, args...).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) SetPassword(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
