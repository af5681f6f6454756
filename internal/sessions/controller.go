package sessions

import (
	"errors"
	"net/http"

	"movieapp/internal/languages"
	"movieapp/internal/movies"
	"movieapp/internal/shared/utils/response"
	"movieapp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	GetAllSessions(c *gin.Context)
	UpdateSession(c *gin.Context)
	DeleteSession(c *gin.Context)

	SuggestSeats(c *gin.Context)
	GetSeatMap(c *gin.Context)
	UpdateOccupancy(c *gin.Context)
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
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, movies.ErrMovieNotFound),
		errors.Is(err, languages.ErrLanguageNotFound),
		errors.Is(err, ErrSeatOutOfGrid),
		errors.Is(err, ErrEmptyOccupancy),
		errors.Is(err, ErrInvalidMovieID):
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
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *controller) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Session created successfully", session, nil)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.GetSessionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session retrieved successfully", session, nil)
}

func (ctrl *controller) GetAllSessions(c *gin.Context) {
	var query SessionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.GetAllSessions(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Sessions retrieved successfully", page, nil)
}

func (ctrl *controller) UpdateSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.service.UpdateSession(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session updated successfully", session, nil)
}

func (ctrl *controller) DeleteSession(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteSession(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Session deleted successfully", nil, nil)
}

// SuggestSeats handles GET /sessions/:id/seats?numOfTickets=N
func (ctrl *controller) SuggestSeats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var query SeatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "numOfTickets must be a positive number", nil, err.Error())
		return
	}

	seats, err := ctrl.service.SuggestSeats(c.Request.Context(), id, query.NumOfTickets)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats suggested successfully", seats, nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	seats, err := ctrl.service.GetSeatMap(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seats, nil)
}

func (ctrl *controller) UpdateOccupancy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req OccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seats, err := ctrl.service.UpdateOccupancy(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat occupancy updated successfully", seats, nil)
}
