package customers

import (
	"context"
	"errors"

	"movieapp/internal/sessions"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	GetAll(ctx context.Context, page, limit int) ([]Customer, int64, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error

	// History
	GetHistory(ctx context.Context, id uuid.UUID) ([]sessions.Session, error)
	AddToHistory(ctx context.Context, id, sessionID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, customer *Customer) error {
	return r.db.WithContext(ctx).Omit("History").Create(customer).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail returns nil without error when no customer uses the address.
func (r *repository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) GetAll(ctx context.Context, page, limit int) ([]Customer, int64, error) {
	var customers []Customer
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Customer{})
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("last_name ASC, first_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&customers).Error

	return customers, totalCount, err
}

func (r *repository) Update(ctx context.Context, customer *Customer) error {
	return r.db.WithContext(ctx).Omit("History").Save(customer).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM customer_sessions WHERE customer_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Customer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) GetHistory(ctx context.Context, id uuid.UUID) ([]sessions.Session, error) {
	var customer Customer
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("sessions.start_at DESC") }).
		Preload("History.Movie").
		Preload("History.Language").
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return customer.History, nil
}

// AddToHistory links the session; linking it twice is a no-op.
func (r *repository) AddToHistory(ctx context.Context, id, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO customer_sessions (customer_id, session_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		id, sessionID,
	).Error
}
