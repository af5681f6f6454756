package genres

import (
	"errors"
	"net/http"

	"movieapp/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateGenre(c *gin.Context)
	GetGenre(c *gin.Context)
	GetGenreBySlug(c *gin.Context)
	GetAllGenres(c *gin.Context)
	UpdateGenre(c *gin.Context)
	DeleteGenre(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrGenreNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGenreExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidGenreText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ctrl *controller) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	genre, err := ctrl.service.CreateGenre(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", statusFor(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Genre created successfully", genre, nil)
}

func (ctrl *controller) GetGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genre ID", nil, err.Error())
		return
	}

	genre, err := ctrl.service.GetGenreByID(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", statusFor(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Genre retrieved successfully", genre, nil)
}

func (ctrl *controller) GetGenreBySlug(c *gin.Context) {
	genre, err := ctrl.service.GetGenreBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondJSON(c, "error", statusFor(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Genre retrieved successfully", genre, nil)
}

func (ctrl *controller) GetAllGenres(c *gin.Context) {
	genres, err := ctrl.service.GetAllGenres(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve genres", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Genres retrieved successfully", genres, nil)
}

func (ctrl *controller) UpdateGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genre ID", nil, err.Error())
		return
	}

	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	genre, err := ctrl.service.UpdateGenre(c.Request.Context(), id, req)
	if err != nil {
		response.RespondJSON(c, "error", statusFor(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Genre updated successfully", genre, nil)
}

func (ctrl *controller) DeleteGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genre ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteGenre(c.Request.Context(), id); err != nil {
		response.RespondJSON(c, "error", statusFor(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Genre deleted successfully", nil, nil)
}
