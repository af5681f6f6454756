package movies

import (
	"context"
	"net/url"
	"slices"
	"testing"
	"time"

	"movieapp/internal/genres"
	"movieapp/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, movie *Movie) error {
	movie.ID = uuid.New()
	return m.Called(ctx, movie).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*Movie)
	return movie, args.Error(1)
}

func (m *mockRepository) GetAll(ctx context.Context, page, limit int) ([]Movie, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, movie *Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) CountSessions(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Search(ctx context.Context, filters []Filter) ([]Movie, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]Movie), args.Error(1)
}

func (m *mockRepository) GetScreenedBetween(ctx context.Context, from, to time.Time) ([]Movie, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]Movie), args.Error(1)
}

func (m *mockRepository) GetWatchedByCustomer(ctx context.Context, customerID uuid.UUID) ([]Movie, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]Movie), args.Error(1)
}

// genreRepo serves a fixed genre catalogue to the real genres service.
type genreRepo struct {
	genres.Repository
	known map[uuid.UUID]genres.Genre
}

func (r genreRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]genres.Genre, error) {
	var out []genres.Genre
	for _, id := range ids {
		if g, ok := r.known[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func newTestService(repo Repository, catalogue ...genres.Genre) *service {
	known := make(map[uuid.UUID]genres.Genre)
	for _, g := range catalogue {
		known[g.ID] = g
	}
	svc := NewService(repo, genres.NewService(genreRepo{known: known})).(*service)
	svc.now = func() time.Time { return time.Date(2026, time.October, 21, 18, 30, 0, 0, time.UTC) }
	return svc
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
	}{
		{"monday midnight", time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, time.October, 21, 13, 0, 0, 0, time.UTC)},
		{"sunday night", time.Date(2026, time.October, 25, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.at)
			assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(2026, time.October, 25, 23, 59, 59, 999999999, time.UTC), end)
		})
	}
}

func TestCreateMovie_MapsRequestAndGenres(t *testing.T) {
	drama := genres.Genre{ID: uuid.New(), Text: "Drama", Slug: "drama"}
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *Movie) bool {
		return m.Title == "Amelie" && m.AgeRestriction == "12+" && m.DurationMinutes == 122 &&
			len(m.Genres) == 1 && m.Genres[0].ID == drama.ID
	})).Return(nil)

	got, err := newTestService(repo, drama).CreateMovie(context.Background(), MovieRequest{
		Title:           " Amelie ",
		AgeRestriction:  "12+",
		ReleasedOn:      "2001-04-25",
		DurationMinutes: 122,
		GenreIDs:        []uuid.UUID{drama.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "2001-04-25", got.ReleaseDate)
	assert.Equal(t, "drama", got.Genres[0].Slug)
	repo.AssertExpectations(t)
}

func TestCreateMovie_UnknownGenre(t *testing.T) {
	repo := new(mockRepository)

	_, err := newTestService(repo).CreateMovie(context.Background(), MovieRequest{
		Title:           "Heat",
		AgeRestriction:  "16+",
		ReleasedOn:      "1995-12-15",
		DurationMinutes: 170,
		GenreIDs:        []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, genres.ErrGenreNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteMovie_RefusesScheduledMovie(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("CountSessions", mock.Anything, id).Return(int64(2), nil)

	err := newTestService(repo).DeleteMovie(context.Background(), id)

	assert.ErrorIs(t, err, ErrMovieHasSessions)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSearchMovies_Filters(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Search", mock.Anything, mock.MatchedBy(func(filters []Filter) bool {
		return len(filters) == 2 &&
			slices.Contains(filters, Filter{Column: "age_restriction", Value: "PG"}) &&
			slices.Contains(filters, Filter{Column: "duration_minutes", Value: 90})
	})).Return([]Movie{{ID: uuid.New(), Title: "Up", AgeRestriction: "PG", DurationMinutes: 90}}, nil)

	got, err := newTestService(repo).SearchMovies(context.Background(), url.Values{
		"age_restriction":  {"PG"},
		"duration_minutes": {"90"},
	})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchMovies_RejectsBadInput(t *testing.T) {
	svc := newTestService(new(mockRepository))
	ctx := context.Background()

	_, err := svc.SearchMovies(ctx, url.Values{"id; DROP TABLE movies": {"1"}})
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = svc.SearchMovies(ctx, url.Values{"duration_minutes": {"long"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = svc.SearchMovies(ctx, url.Values{})
	assert.ErrorIs(t, err, ErrEmptySearch)
}

func TestGetWeekMovies_UsesCurrentWeekAndCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := new(mockRepository)
	from := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.October, 25, 23, 59, 59, 999999999, time.UTC)
	repo.On("GetScreenedBetween", mock.Anything, from, to).
		Return([]Movie{{ID: uuid.New(), Title: "Dune", AgeRestriction: "12+"}}, nil).Once()

	svc := newTestService(repo)
	svc.SetCacheService(cache.NewService(client))

	first, err := svc.GetWeekMovies(context.Background())
	require.NoError(t, err)
	second, err := svc.GetWeekMovies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Dune", first[0].Title)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, mr.Exists("movieapp:movies:week:2026-10-19"))
	repo.AssertExpectations(t)
}

func TestMovie_GenreIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := Movie{Genres: []genres.Genre{{ID: a}, {ID: b}}}

	assert.Equal(t, []uuid.UUID{a, b}, m.GenreIDs())
	assert.Empty(t, Movie{}.GenreIDs())
}

func TestRefreshWeekCache_OverwritesCachedWeek(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	from := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.October, 25, 23, 59, 59, 999999999, time.UTC)
	repo := new(mockRepository)
	repo.On("GetScreenedBetween", mock.Anything, from, to).
		Return([]Movie{{ID: uuid.New(), Title: "Dune"}}, nil).Once()
	repo.On("GetScreenedBetween", mock.Anything, from, to).
		Return([]Movie{{ID: uuid.New(), Title: "Dune"}, {ID: uuid.New(), Title: "Heat"}}, nil).Once()

	svc := newTestService(repo)
	svc.SetCacheService(cache.NewService(client))
	ctx := context.Background()

	_, err := svc.GetWeekMovies(ctx)
	require.NoError(t, err)

	count, err := svc.RefreshWeekCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	cached, err := svc.GetWeekMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2)
	repo.AssertExpectations(t)
}
