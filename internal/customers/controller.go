package customers

import (
	"errors"
	"net/http"

	"movieapp/internal/sessions"
	"movieapp/internal/shared/utils/response"
	"movieapp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateCustomer(c *gin.Context)
	GetCustomer(c *gin.Context)
	GetAllCustomers(c *gin.Context)
	UpdateCustomer(c *gin.Context)
	DeleteCustomer(c *gin.Context)

	GetHistory(c *gin.Context)
	AddToHistory(c *gin.Context)
	GetWatchedMovies(c *gin.Context)
	GetRecommendations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, ErrInvalidBirthDate),
		errors.Is(err, sessions.ErrSessionNotFound):
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(c, err, status)
	}
	response.RespondJSON(c, "error", status, err.Error(), nil, nil)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid customer ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *controller) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	customer, err := ctrl.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Customer created successfully", customer, nil)
}

func (ctrl *controller) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := ctrl.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Customer retrieved successfully", customer, nil)
}

func (ctrl *controller) GetAllCustomers(c *gin.Context) {
	var query CustomerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.GetAllCustomers(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Customers retrieved successfully", page, nil)
}

func (ctrl *controller) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	customer, err := ctrl.service.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Customer updated successfully", customer, nil)
}

func (ctrl *controller) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Customer deleted successfully", nil, nil)
}

func (ctrl *controller) GetHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	history, err := ctrl.service.GetHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "History retrieved successfully", history, nil)
}

func (ctrl *controller) AddToHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	history, err := ctrl.service.AddToHistory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Session added to history", history, nil)
}

func (ctrl *controller) GetWatchedMovies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	list, err := ctrl.service.GetWatchedMovies(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Watched movies retrieved successfully", list, nil)
}

// GetRecommendations handles GET /customers/:id/recommendations
func (ctrl *controller) GetRecommendations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	list, err := ctrl.service.GetRecommendations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Recommendations retrieved successfully", list, nil)
}
