package sessions

import (
	"context"
	"testing"
	"time"

	"movieapp/internal/activity"
	"movieapp/internal/languages"
	"movieapp/internal/movies"
	"movieapp/internal/seating"
	"movieapp/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, session *Session) error {
	session.ID = uuid.New()
	return m.Called(ctx, session).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*Session)
	return session, args.Error(1)
}

func (m *mockRepository) GetAll(ctx context.Context, movieID *uuid.UUID, page, limit int) ([]Session, int64, error) {
	args := m.Called(ctx, movieID, page, limit)
	return args.Get(0).([]Session), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, session *Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetOccupiedSeats(ctx context.Context, sessionID uuid.UUID) ([]OccupiedSeat, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]OccupiedSeat), args.Error(1)
}

func (m *mockRepository) UpdateOccupancy(ctx context.Context, sessionID uuid.UUID, occupy, free []OccupiedSeat) error {
	return m.Called(ctx, sessionID, occupy, free).Error(0)
}

type movieLookup struct{ err error }

func (l movieLookup) GetMovieByID(_ context.Context, id uuid.UUID) (*movies.MovieResponse, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &movies.MovieResponse{ID: id.String()}, nil
}

type languageLookup struct{ err error }

func (l languageLookup) Exists(context.Context, uuid.UUID) error { return l.err }

type recordingPublisher struct {
	events chan *activity.Event
}

func (r recordingPublisher) Publish(_ context.Context, event *activity.Event) error {
	r.events <- event
	return nil
}

func (recordingPublisher) Close() error { return nil }

func newMiniredisCache(t *testing.T) (*miniredis.Miniredis, cache.Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewService(client)
}

func positions(seats []seating.Seat) [][2]int {
	out := make([][2]int, len(seats))
	for i, s := range seats {
		out[i] = [2]int{s.RowNr, s.SeatNr}
	}
	return out
}

func TestSuggestSeats_SkipsOccupiedSeats(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(true, nil)
	repo.On("GetOccupiedSeats", mock.Anything, id).Return([]OccupiedSeat{{SessionID: id, RowNr: 4, SeatNr: 5}}, nil)

	events := make(chan *activity.Event, 1)
	svc := NewService(repo, movieLookup{}, languageLookup{})
	svc.SetPublisher(recordingPublisher{events: events})

	seats, err := svc.SuggestSeats(context.Background(), id, 1)

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{3, 5}}, positions(seats))
	assert.True(t, seats[0].IsAvailable)

	select {
	case event := <-events:
		assert.Equal(t, activity.EventSeatsSuggested, event.Type)
		assert.Equal(t, id, event.SubjectID)
	case <-time.After(time.Second):
		t.Fatal("seats.suggested was not published")
	}
}

func TestSuggestSeats_FullGridPrefersCentralRun(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(true, nil)
	repo.On("GetOccupiedSeats", mock.Anything, id).Return([]OccupiedSeat{}, nil)

	seats, err := NewService(repo, movieLookup{}, languageLookup{}).SuggestSeats(context.Background(), id, 3)

	require.NoError(t, err)
	assert.Equal(t, [][2]int{{9, 5}, {8, 5}, {7, 5}}, positions(seats))
}

func TestSuggestSeats_UnknownSession(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(false, nil)

	_, err := NewService(repo, movieLookup{}, languageLookup{}).SuggestSeats(context.Background(), id, 2)

	assert.ErrorIs(t, err, ErrSessionNotFound)
	repo.AssertNotCalled(t, "GetOccupiedSeats", mock.Anything, mock.Anything)
}

func TestGetSeatMap_BuildsGridAndCaches(t *testing.T) {
	mr, cacheService := newMiniredisCache(t)
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(true, nil).Once()
	repo.On("GetOccupiedSeats", mock.Anything, id).
		Return([]OccupiedSeat{{SessionID: id, RowNr: 1, SeatNr: 2}}, nil).Once()

	svc := NewService(repo, movieLookup{}, languageLookup{})
	svc.SetCacheService(cacheService)

	first, err := svc.GetSeatMap(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.GetSeatMap(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, first, seating.NumRows*seating.SeatsPerRow)
	assert.Equal(t, seating.Seat{RowNr: 1, SeatNr: 1, IsAvailable: true}, first[0])
	assert.Equal(t, seating.Seat{RowNr: 1, SeatNr: 2, IsAvailable: false}, first[1])
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("movieapp:sessions:seatmap:uuid:"+id.String()))
	repo.AssertExpectations(t)
}

func TestGetAvailableSeats_OnlyFreeSeats(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(true, nil)
	repo.On("GetOccupiedSeats", mock.Anything, id).Return([]OccupiedSeat{
		{SessionID: id, RowNr: 4, SeatNr: 5},
		{SessionID: id, RowNr: 9, SeatNr: 10},
	}, nil)

	seats, err := NewService(repo, movieLookup{}, languageLookup{}).GetAvailableSeats(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, seats, seating.NumRows*seating.SeatsPerRow-2)
	for _, seat := range seats {
		assert.True(t, seat.IsAvailable, "row %d seat %d", seat.RowNr, seat.SeatNr)
	}
	assert.NotContains(t, positions(seats), [2]int{4, 5})

	// the provider output goes straight into the selector
	assert.Equal(t, [][2]int{{3, 5}}, positions(seating.Select(seats, 1)))
}

func TestUpdateOccupancy_Validation(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, movieLookup{}, languageLookup{})
	id := uuid.New()

	_, err := svc.UpdateOccupancy(context.Background(), id, OccupancyRequest{})
	assert.ErrorIs(t, err, ErrEmptyOccupancy)

	_, err = svc.UpdateOccupancy(context.Background(), id, OccupancyRequest{
		Occupied: []SeatPosition{{RowNr: 10, SeatNr: 1}},
	})
	assert.ErrorIs(t, err, ErrSeatOutOfGrid)

	repo.AssertNotCalled(t, "UpdateOccupancy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOccupancy_InvalidatesSeatMap(t *testing.T) {
	mr, cacheService := newMiniredisCache(t)
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Exists", mock.Anything, id).Return(true, nil)
	repo.On("GetOccupiedSeats", mock.Anything, id).Return([]OccupiedSeat{}, nil).Once()
	repo.On("UpdateOccupancy", mock.Anything, id,
		[]OccupiedSeat{{SessionID: id, RowNr: 5, SeatNr: 5}},
		[]OccupiedSeat{{SessionID: id, RowNr: 2, SeatNr: 3}},
	).Return(nil)
	repo.On("GetOccupiedSeats", mock.Anything, id).
		Return([]OccupiedSeat{{SessionID: id, RowNr: 5, SeatNr: 5}}, nil).Once()

	svc := NewService(repo, movieLookup{}, languageLookup{})
	svc.SetCacheService(cacheService)
	key := "movieapp:sessions:seatmap:uuid:" + id.String()

	_, err := svc.GetSeatMap(context.Background(), id)
	require.NoError(t, err)
	require.True(t, mr.Exists(key))

	seats, err := svc.UpdateOccupancy(context.Background(), id, OccupancyRequest{
		Occupied: []SeatPosition{{RowNr: 5, SeatNr: 5}},
		Freed:    []SeatPosition{{RowNr: 2, SeatNr: 3}},
	})

	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
	assert.False(t, seats[4*seating.SeatsPerRow+4].IsAvailable)
	repo.AssertExpectations(t)
}

func TestCreateSession_ChecksMovieAndLanguage(t *testing.T) {
	req := SessionRequest{
		MovieID:    uuid.New(),
		LanguageID: uuid.New(),
		HallNr:     "3",
		StartAt:    time.Date(2026, time.October, 21, 19, 0, 0, 0, time.UTC),
		Price:      9.5,
	}

	repo := new(mockRepository)
	_, err := NewService(repo, movieLookup{err: movies.ErrMovieNotFound}, languageLookup{}).
		CreateSession(context.Background(), req)
	assert.ErrorIs(t, err, movies.ErrMovieNotFound)

	_, err = NewService(repo, movieLookup{}, languageLookup{err: languages.ErrLanguageNotFound}).
		CreateSession(context.Background(), req)
	assert.ErrorIs(t, err, languages.ErrLanguageNotFound)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSession_MapsRequest(t *testing.T) {
	movieID, languageID := uuid.New(), uuid.New()
	tallinn := time.FixedZone("EEST", 3*60*60)
	start := time.Date(2026, time.October, 21, 22, 0, 0, 0, tallinn)

	repo := new(mockRepository)
	var created *Session
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *Session) bool {
		created = s
		return s.MovieID == movieID && s.LanguageID == languageID && s.HallNr == "2" &&
			s.StartAt.Equal(start) && s.StartAt.Location() == time.UTC && s.Price == 8
	})).Return(nil)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(&Session{
		MovieID: movieID, LanguageID: languageID, HallNr: "2", StartAt: start.UTC(), Price: 8,
		Movie: &movies.Movie{Title: "Dune"},
	}, nil)

	resp, err := NewService(repo, movieLookup{}, languageLookup{}).CreateSession(context.Background(), SessionRequest{
		MovieID:    movieID,
		LanguageID: languageID,
		HallNr:     " 2 ",
		StartAt:    start,
		Price:      8,
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.MovieTitle)
	repo.AssertCalled(t, "GetByID", mock.Anything, created.ID)
}

func TestDeleteSession_NotFound(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	err := NewService(repo, movieLookup{}, languageLookup{}).DeleteSession(context.Background(), id)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetAllSessions_FiltersByMovie(t *testing.T) {
	repo := new(mockRepository)
	movieID := uuid.New()
	repo.On("GetAll", mock.Anything, &movieID, 1, 20).Return([]Session{{ID: uuid.New(), MovieID: movieID}}, int64(1), nil)

	page, err := NewService(repo, movieLookup{}, languageLookup{}).
		GetAllSessions(context.Background(), SessionListQuery{MovieID: movieID.String()})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	assert.Len(t, page.Sessions, 1)
}
