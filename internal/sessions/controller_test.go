package sessions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieapp/internal/activity"
	"movieapp/internal/seating"
	"movieapp/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetAvailableSeats(ctx context.Context, id uuid.UUID) ([]seating.Seat, error) {
	args := m.Called(ctx, id)
	seats, _ := args.Get(0).([]seating.Seat)
	return seats, args.Error(1)
}

func (m *mockService) GetSeatMap(ctx context.Context, id uuid.UUID) ([]seating.Seat, error) {
	args := m.Called(ctx, id)
	seats, _ := args.Get(0).([]seating.Seat)
	return seats, args.Error(1)
}

func (m *mockService) CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*SessionResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*SessionResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetAllSessions(ctx context.Context, query SessionListQuery) (*PaginatedSessions, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*PaginatedSessions)
	return resp, args.Error(1)
}

func (m *mockService) UpdateSession(ctx context.Context, id uuid.UUID, req SessionRequest) (*SessionResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*SessionResponse)
	return resp, args.Error(1)
}

func (m *mockService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) SuggestSeats(ctx context.Context, id uuid.UUID, numOfTickets int) ([]seating.Seat, error) {
	args := m.Called(ctx, id, numOfTickets)
	seats, _ := args.Get(0).([]seating.Seat)
	return seats, args.Error(1)
}

func (m *mockService) UpdateOccupancy(ctx context.Context, id uuid.UUID, req OccupancyRequest) ([]seating.Seat, error) {
	args := m.Called(ctx, id, req)
	seats, _ := args.Get(0).([]seating.Seat)
	return seats, args.Error(1)
}

func (m *mockService) SetCacheService(cache.Service) {}

func (m *mockService) SetPublisher(activity.Publisher) {}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	SetupSessionRoutes(api, api.Group("/admin"), NewController(svc))
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestController_SuggestSeats(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("SuggestSeats", mock.Anything, id, 2).Return([]seating.Seat{
		{RowNr: 6, SeatNr: 5, IsAvailable: true},
		{RowNr: 6, SeatNr: 6, IsAvailable: true},
	}, nil)

	w := serve(newRouter(svc), http.MethodGet, "/api/v1/sessions/"+id.String()+"/seats?numOfTickets=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, map[string]interface{}{"row_nr": float64(6), "seat_nr": float64(5), "is_available": true}, body.Data[0])
}

func TestController_SuggestSeatsRejectsBadCount(t *testing.T) {
	svc := new(mockService)
	r := newRouter(svc)
	base := "/api/v1/sessions/" + uuid.NewString() + "/seats"

	for _, query := range []string{"", "?numOfTickets=0", "?numOfTickets=-3", "?numOfTickets=two"} {
		w := serve(r, http.MethodGet, base+query, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
	svc.AssertNotCalled(t, "SuggestSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_SuggestSeatsUnknownSession(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("SuggestSeats", mock.Anything, id, 1).Return(nil, ErrSessionNotFound)

	w := serve(newRouter(svc), http.MethodGet, "/api/v1/sessions/"+id.String()+"/seats?numOfTickets=1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_UpdateOccupancyValidatesSeats(t *testing.T) {
	svc := new(mockService)
	target := "/api/v1/admin/sessions/" + uuid.NewString() + "/occupied"

	w := serve(newRouter(svc), http.MethodPut, target, `{"occupied":[{"row_nr":12,"seat_nr":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateOccupancy", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_MalformedSessionID(t *testing.T) {
	w := serve(newRouter(new(mockService)), http.MethodGet, "/api/v1/sessions/not-a-uuid/seatmap", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_SeatMapServesFullGrid(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("GetSeatMap", mock.Anything, id).Return(seating.Grid(func(rowNr, seatNr int) bool {
		return rowNr == 1 && seatNr == 1
	}), nil)

	w := serve(newRouter(svc), http.MethodGet, "/api/v1/sessions/"+id.String()+"/seatmap", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []seating.Seat `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, seating.NumRows*seating.SeatsPerRow)
	assert.False(t, body.Data[0].IsAvailable)
	svc.AssertNotCalled(t, "GetAvailableSeats", mock.Anything, mock.Anything)
}
