package languages

import (
	"errors"
	"net/http"

	"movieapp/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrLanguageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrLanguageExists), errors.Is(err, ErrLanguageInUse):
		status = http.StatusConflict
	case errors.Is(err, ErrInvalidLanguageText):
		status = http.StatusBadRequest
	}
	response.RespondJSON(c, "error", status, err.Error(), nil, nil)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid language ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (ctrl *Controller) List(c *gin.Context) {
	languages, err := ctrl.service.GetAllLanguages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Languages retrieved successfully", languages, nil)
}

func (ctrl *Controller) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	language, err := ctrl.service.GetLanguageByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Language retrieved successfully", language, nil)
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	language, err := ctrl.service.CreateLanguage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Language created successfully", language, nil)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	language, err := ctrl.service.UpdateLanguage(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Language updated successfully", language, nil)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.service.DeleteLanguage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Language deleted successfully", nil, nil)
}
