package customers

import "movieapp/internal/sessions"

type CustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
}

type PaginatedCustomers struct {
	Customers  []CustomerResponse `json:"customers"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type HistoryResponse struct {
	CustomerID string                     `json:"customer_id"`
	Sessions   []sessions.SessionResponse `json:"sessions"`
}
