package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieapp/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Data    json.RawMessage   `json:"data"`
}

func newAuthEngine(repo *mockRepository) (*gin.Engine, Service) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	svc := NewService(repo, cfg)
	r := gin.New()
	NewRouter(NewController(svc), cfg).SetupRoutes(r.Group("/api/v1"))
	return r, svc
}

func send(t *testing.T, r *gin.Engine, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		// errors may be a plain string for malformed bodies
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func TestController_RegisterReportsFailedFieldsByJSONName(t *testing.T) {
	repo := new(mockRepository)
	r, _ := newAuthEngine(repo)

	code, env := send(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"first_name":"K","last_name":"Karu","email":"not-an-email","password":"123"}`, "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, map[string]string{"first_name": "min", "email": "email", "password": "min"}, env.Errors)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestController_RegisterConflict(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(ErrUserAlreadyExists)
	r, _ := newAuthEngine(repo)

	code, env := send(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"first_name":"Kati","last_name":"Karu","email":"kati@example.com","password":"secret1"}`, "")

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User with this email already exists", env.Message)
}

func TestController_ChangePassword(t *testing.T) {
	user := existingUser(t, "old-password")
	repo := new(mockRepository)
	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID.String()).Return(user, nil)
	repo.On("SetPassword", mock.Anything, user.ID.String(), mock.Anything).Return(nil).Once()
	r, svc := newAuthEngine(repo)

	login, err := svc.Login(context.Background(), &LoginRequest{Email: user.Email, Password: "old-password"})
	require.NoError(t, err)

	code, _ := send(t, r, http.MethodPut, "/api/v1/auth/change-password",
		`{"current_password":"old-password","new_password":"new-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := send(t, r, http.MethodPut, "/api/v1/auth/change-password",
		`{"current_password":"wrong","new_password":"new-password"}`, login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)

	code, env = send(t, r, http.MethodPut, "/api/v1/auth/change-password",
		`{"current_password":"old-password","new_password":"old-password"}`, login.AccessToken)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "nefield", env.Errors["new_password"])

	code, _ = send(t, r, http.MethodPut, "/api/v1/auth/change-password",
		`{"current_password":"old-password","new_password":"new-password"}`, login.AccessToken)
	assert.Equal(t, http.StatusOK, code)
	repo.AssertExpectations(t)
}

func TestController_RefreshForDeletedAccount(t *testing.T) {
	repo := new(mockRepository)
	r, svc := newAuthEngine(repo)
	userID := uuid.NewString()
	repo.On("FindByID", mock.Anything, userID).Return(nil, ErrUserNotFound)

	pair, err := svc.(*service).generateTokenPair(userID, "gone@example.com", string(users.RoleUser))
	require.NoError(t, err)

	code, env := send(t, r, http.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", env.Message)
}

func TestController_MeForDeletedAccount(t *testing.T) {
	repo := new(mockRepository)
	r, svc := newAuthEngine(repo)
	userID := uuid.NewString()
	repo.On("FindByID", mock.Anything, userID).Return(nil, ErrUserNotFound)

	pair, err := svc.(*service).generateTokenPair(userID, "gone@example.com", string(users.RoleUser))
	require.NoError(t, err)

	code, env := send(t, r, http.MethodGet, "/api/v1/auth/me", "", pair.AccessToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Message)
}
