package customers

import "github.com/google/uuid"

// CustomerRequest is used for both create and full update.
type CustomerRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	BornOn    string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	Email     string `json:"email" binding:"required,email,max=100"`
}

type CustomerListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// HistoryRequest attaches a watched session to a customer.
type HistoryRequest struct {
	SessionID uuid.UUID `json:"session_id" binding:"required"`
}
