package customers

import (
	"time"

	"movieapp/internal/sessions"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName string             `json:"first_name" gorm:"not null;size:100"`
	LastName  string             `json:"last_name" gorm:"not null;size:100"`
	BirthDate time.Time          `json:"birth_date" gorm:"type:date;not null"`
	Email     string             `json:"email" gorm:"uniqueIndex;not null;size:100"`
	History   []sessions.Session `json:"history,omitempty" gorm:"many2many:customer_sessions;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		BirthDate: c.BirthDate.Format(time.DateOnly),
		Email:     c.Email,
	}
}
