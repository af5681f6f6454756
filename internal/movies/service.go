package movies

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieapp/internal/genres"
	"movieapp/internal/shared/constants"
	"movieapp/pkg/cache"
	"movieapp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMovieHasSessions = errors.New("movie has scheduled sessions")
	ErrUnknownFilter    = errors.New("unknown search filter")
	ErrInvalidFilter    = errors.New("invalid search filter value")
	ErrEmptySearch      = errors.New("at least one search filter is required")
	ErrInvalidRelease   = errors.New("release_date must be formatted as YYYY-MM-DD")
)

// searchColumns maps accepted query parameters to movie columns.
var searchColumns = map[string]string{
	"title":            "title",
	"age_restriction":  "age_restriction",
	"release_date":     "release_date",
	"duration_minutes": "duration_minutes",
	"genre":            "genre",
}

type Service interface {
	CreateMovie(ctx context.Context, req MovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req MovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	SearchMovies(ctx context.Context, params url.Values) ([]MovieResponse, error)

	// GetWeekMovies lists movies screened in the current Monday-to-Sunday week.
	GetWeekMovies(ctx context.Context) ([]Movie, error)
	// GetWatchedMovies lists the movies of the customer's past sessions.
	GetWatchedMovies(ctx context.Context, customerID uuid.UUID) ([]Movie, error)
	// RefreshWeekCache recomputes the cached week listing.
	RefreshWeekCache(ctx context.Context) (int, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	genres       genres.Service
	cacheService cache.Service
	now          func() time.Time
}

func NewService(repo Repository, genreService genres.Service) Service {
	return &service{repo: repo, genres: genreService, now: time.Now}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// WeekBounds returns Monday 00:00 and the last instant of Sunday for the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day()-daysSinceMonday, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

func (s *service) invalidate(ctx context.Context, id *uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	var err error
	if id != nil {
		err = s.cacheService.Delete(ctx, constants.BuildMovieDetailKey(id.String()))
	}
	err = errors.Join(err,
		s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_WEEK),
		s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_RECOMMENDATIONS_ALL),
	)
	if err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate movie cache", err, nil)
	}
}

// build maps the request onto movie, resolving genres and the release date.
func (s *service) build(ctx context.Context, movie *Movie, req MovieRequest) error {
	if err := copier.Copy(movie, &req); err != nil {
		return fmt.Errorf("failed to map movie: %w", err)
	}
	movie.Title = strings.TrimSpace(movie.Title)

	released, err := time.Parse(time.DateOnly, req.ReleasedOn)
	if err != nil {
		return ErrInvalidRelease
	}
	movie.ReleaseDate = released

	movie.Genres, err = s.genres.ResolveGenres(ctx, req.GenreIDs)
	return err
}

func (s *service) CreateMovie(ctx context.Context, req MovieRequest) (*MovieResponse, error) {
	movie := &Movie{}
	if err := s.build(ctx, movie, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	s.invalidate(ctx, nil)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	load := func() (*MovieResponse, error) {
		movie, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := movie.ToResponse()
		return &resp, nil
	}

	if s.cacheService == nil {
		return load()
	}

	var resp MovieResponse
	err := s.cacheService.GetOrSet(ctx, constants.BuildMovieDetailKey(id.String()), constants.TTL_MOVIE_DETAIL,
		func() (interface{}, error) { return load() }, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	list, total, err := s.repo.GetAll(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	return &PaginatedMovies{
		Movies:     ToResponses(list),
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req MovieRequest) (*MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.build(ctx, movie, req); err != nil {
		return nil, err
	}
	movie.ID = id

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	s.invalidate(ctx, &id)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	scheduled, err := s.repo.CountSessions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check movie sessions: %w", err)
	}
	if scheduled > 0 {
		return ErrMovieHasSessions
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	s.invalidate(ctx, &id)
	return nil
}

// SearchMovies applies equality filters; every parameter must be allow-listed.
func (s *service) SearchMovies(ctx context.Context, params url.Values) ([]MovieResponse, error) {
	filters := make([]Filter, 0, len(params))
	for key, values := range params {
		column, ok := searchColumns[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, key)
		}
		if len(values) == 0 {
			continue
		}

		value, err := filterValue(column, values[0])
		if err != nil {
			return nil, err
		}
		filters = append(filters, Filter{Column: column, Value: value})
	}
	if len(filters) == 0 {
		return nil, ErrEmptySearch
	}

	list, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return ToResponses(list), nil
}

func filterValue(column, raw string) (interface{}, error) {
	switch column {
	case "duration_minutes":
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, column)
		}
		return minutes, nil
	case "release_date":
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, column)
		}
		return date, nil
	default:
		return raw, nil
	}
}

func (s *service) loadWeek(ctx context.Context) ([]Movie, error) {
	from, to := WeekBounds(s.now())
	list, err := s.repo.GetScreenedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load week movies: %w", err)
	}
	if list == nil {
		list = []Movie{}
	}
	return list, nil
}

func (s *service) GetWeekMovies(ctx context.Context) ([]Movie, error) {
	if s.cacheService == nil {
		return s.loadWeek(ctx)
	}

	weekStart, _ := WeekBounds(s.now())
	var list []Movie
	err := s.cacheService.GetOrSet(ctx, constants.BuildWeekMoviesKey(weekStart), constants.TTL_MOVIES_WEEK,
		func() (interface{}, error) { return s.loadWeek(ctx) }, &list)
	return list, err
}

func (s *service) RefreshWeekCache(ctx context.Context) (int, error) {
	list, err := s.loadWeek(ctx)
	if err != nil {
		return 0, err
	}
	if s.cacheService != nil {
		weekStart, _ := WeekBounds(s.now())
		if err := s.cacheService.Set(ctx, constants.BuildWeekMoviesKey(weekStart), list, constants.TTL_MOVIES_WEEK); err != nil {
			return 0, fmt.Errorf("failed to cache week movies: %w", err)
		}
	}
	return len(list), nil
}

func (s *service) GetWatchedMovies(ctx context.Context, customerID uuid.UUID) ([]Movie, error) {
	list, err := s.repo.GetWatchedByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watched movies: %w", err)
	}
	return list, nil
}
