package sessions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	GetAll(ctx context.Context, movieID *uuid.UUID, page, limit int) ([]Session, int64, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Seat occupancy
	GetOccupiedSeats(ctx context.Context, sessionID uuid.UUID) ([]OccupiedSeat, error)
	UpdateOccupancy(ctx context.Context, sessionID uuid.UUID, occupy, free []OccupiedSeat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Omit("Movie", "Language").Create(session).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Language").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) GetAll(ctx context.Context, movieID *uuid.UUID, page, limit int) ([]Session, int64, error) {
	var sessions []Session
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Session{})
	if movieID != nil {
		db = db.Where("movie_id = ?", *movieID)
	}
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Movie").
		Preload("Language").
		Order("start_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error

	return sessions, totalCount, err
}

func (r *repository) Update(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Omit("Movie", "Language", "OccupiedSeats").Save(session).Error
}

// Delete removes the session with its occupancy and history links.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM customer_sessions WHERE session_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&OccupiedSeat{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Session{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) GetOccupiedSeats(ctx context.Context, sessionID uuid.UUID) ([]OccupiedSeat, error) {
	var seats []OccupiedSeat
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("row_nr ASC, seat_nr ASC").
		Find(&seats).Error
	return seats, err
}

// UpdateOccupancy inserts occupy (ignoring seats already taken) and deletes free in one transaction.
func (r *repository) UpdateOccupancy(ctx context.Context, sessionID uuid.UUID, occupy, free []OccupiedSeat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(occupy) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&occupy).Error; err != nil {
				return err
			}
		}
		for _, seat := range free {
			err := tx.Where("session_id = ? AND row_nr = ? AND seat_nr = ?", sessionID, seat.RowNr, seat.SeatNr).
				Delete(&OccupiedSeat{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
