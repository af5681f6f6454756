package auth

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"movieapp/internal/shared/middleware"
	"movieapp/internal/shared/utils/response"
	"movieapp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	RefreshToken(c *gin.Context)
	Logout(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetMe(c *gin.Context)
}

type controller struct {
	service  Service
	validate *validator.Validate
}

func NewController(service Service) Controller {
	validate := validator.New()
	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &controller{service: service, validate: validate}
}

// bind decodes the body into dst and checks its validate tags.
// It writes the 400 itself and reports whether the handler may go on.
func (ctrl *controller) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return false
	}

	err := ctrl.validate.Struct(dst)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return false
	}
	failed := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = fe.Tag()
	}
	response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, failed)
	return false
}

func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Authentication request failed"
	switch {
	case errors.Is(err, ErrUserAlreadyExists):
		status, message = http.StatusConflict, "User with this email already exists"
	case errors.Is(err, ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		status, message = http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	}
	if status >= http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(c, err, status)
	}
	response.RespondJSON(c, "error", status, message, nil, nil)
}

func currentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.ContextUserID)
	if id == "" {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return "", false
	}
	return id, true
}

func (ctrl *controller) Register(c *gin.Context) {
	var req RegisterRequest
	if !ctrl.bind(c, &req) {
		return
	}

	resp, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if !ctrl.bind(c, &req) {
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Login successful", resp, nil)
}

func (ctrl *controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !ctrl.bind(c, &req) {
		return
	}

	pair, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed successfully", pair, nil)
}

// Logout only acknowledges; tokens expire on their own.
func (ctrl *controller) Logout(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (ctrl *controller) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !ctrl.bind(c, &req) {
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *controller) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "User data retrieved successfully", profile, nil)
}
