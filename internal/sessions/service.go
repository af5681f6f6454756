package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movieapp/internal/activity"
	"movieapp/internal/movies"
	"movieapp/internal/seating"
	"movieapp/internal/shared/constants"
	"movieapp/pkg/cache"
	"movieapp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSeatOutOfGrid   = errors.New("seat is outside the hall layout")
	ErrEmptyOccupancy  = errors.New("occupancy update lists no seats")
	ErrInvalidMovieID  = errors.New("movie_id must be a valid UUID")
)

// SeatMapProvider returns the free seats of a session; every seat it returns has IsAvailable set.
type SeatMapProvider interface {
	GetAvailableSeats(ctx context.Context, sessionID uuid.UUID) ([]seating.Seat, error)
}

// MovieLookup confirms that a session's movie exists.
type MovieLookup interface {
	GetMovieByID(ctx context.Context, id uuid.UUID) (*movies.MovieResponse, error)
}

// LanguageLookup confirms that a session's language exists.
type LanguageLookup interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	SeatMapProvider
	// GetSeatMap returns the full hall grid, occupied seats included.
	GetSeatMap(ctx context.Context, sessionID uuid.UUID) ([]seating.Seat, error)

	CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error)
	GetAllSessions(ctx context.Context, query SessionListQuery) (*PaginatedSessions, error)
	UpdateSession(ctx context.Context, id uuid.UUID, req SessionRequest) (*SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// SuggestSeats picks the best numOfTickets seats that are still free.
	SuggestSeats(ctx context.Context, id uuid.UUID, numOfTickets int) ([]seating.Seat, error)
	UpdateOccupancy(ctx context.Context, id uuid.UUID, req OccupancyRequest) ([]seating.Seat, error)

	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher activity.Publisher)
}

type service struct {
	repo         Repository
	movies       MovieLookup
	languages    LanguageLookup
	cacheService cache.Service
	publisher    activity.Publisher
}

func NewService(repo Repository, movieLookup MovieLookup, languageLookup LanguageLookup) Service {
	return &service{
		repo:      repo,
		movies:    movieLookup,
		languages: languageLookup,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetPublisher(publisher activity.Publisher) {
	s.publisher = publisher
}

// invalidate drops the seat map of id and every listing derived from the schedule.
func (s *service) invalidate(ctx context.Context, id uuid.UUID, schedule bool) {
	if s.cacheService == nil {
		return
	}
	err := s.cacheService.Delete(ctx, constants.BuildSeatMapKey(id.String()))
	if schedule {
		err = errors.Join(err,
			s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_WEEK),
			s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_RECOMMENDATIONS_ALL),
		)
	}
	if err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate session cache", err, map[string]interface{}{
			"session_id": id.String(),
		})
	}
}

// build maps the request onto session after checking its movie and language.
func (s *service) build(ctx context.Context, session *Session, req SessionRequest) error {
	if _, err := s.movies.GetMovieByID(ctx, req.MovieID); err != nil {
		return err
	}
	if err := s.languages.Exists(ctx, req.LanguageID); err != nil {
		return err
	}

	if err := copier.Copy(session, &req); err != nil {
		return fmt.Errorf("failed to map session: %w", err)
	}
	session.HallNr = strings.TrimSpace(session.HallNr)
	session.StartAt = session.StartAt.UTC()
	session.Movie = nil
	session.Language = nil
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (s *service) CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	session := &Session{}
	if err := s.build(ctx, session, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.invalidate(ctx, session.ID, true)

	return s.GetSessionByID(ctx, session.ID)
}

func (s *service) GetSessionByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := session.ToResponse()
	return &resp, nil
}

func (s *service) GetAllSessions(ctx context.Context, query SessionListQuery) (*PaginatedSessions, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	var movieID *uuid.UUID
	if query.MovieID != "" {
		id, err := uuid.Parse(query.MovieID)
		if err != nil {
			return nil, ErrInvalidMovieID
		}
		movieID = &id
	}

	list, total, err := s.repo.GetAll(ctx, movieID, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := make([]SessionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, list[i].ToResponse())
	}
	return &PaginatedSessions{
		Sessions:   resp,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) UpdateSession(ctx context.Context, id uuid.UUID, req SessionRequest) (*SessionResponse, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.build(ctx, session, req); err != nil {
		return nil, err
	}
	session.ID = id

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	s.invalidate(ctx, id, true)

	return s.GetSessionByID(ctx, id)
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.invalidate(ctx, id, true)
	return nil
}

func (s *service) loadSeatMap(ctx context.Context, id uuid.UUID) ([]seating.Seat, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	occupied, err := s.repo.GetOccupiedSeats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied seats: %w", err)
	}

	taken := make(map[[2]int]struct{}, len(occupied))
	for _, seat := range occupied {
		taken[[2]int{seat.RowNr, seat.SeatNr}] = struct{}{}
	}
	return seating.Grid(func(rowNr, seatNr int) bool {
		_, ok := taken[[2]int{rowNr, seatNr}]
		return ok
	}), nil
}

// GetSeatMap returns the full grid in row-major order.
func (s *service) GetSeatMap(ctx context.Context, id uuid.UUID) ([]seating.Seat, error) {
	if s.cacheService == nil {
		return s.loadSeatMap(ctx, id)
	}

	var seats []seating.Seat
	err := s.cacheService.GetOrSet(ctx, constants.BuildSeatMapKey(id.String()), constants.TTL_SESSION_SEAT_MAP,
		func() (interface{}, error) { return s.loadSeatMap(ctx, id) }, &seats)
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// GetAvailableSeats keeps the free seats of the grid, in row-major order.
func (s *service) GetAvailableSeats(ctx context.Context, id uuid.UUID) ([]seating.Seat, error) {
	grid, err := s.GetSeatMap(ctx, id)
	if err != nil {
		return nil, err
	}
	return seating.Available(grid), nil
}

func (s *service) SuggestSeats(ctx context.Context, id uuid.UUID, numOfTickets int) ([]seating.Seat, error) {
	available, err := s.GetAvailableSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	seats := seating.Select(available, numOfTickets)

	logger.GetDefault().LogSeatsSuggested(ctx, id.String(), numOfTickets, len(seats))
	activity.PublishAsync(ctx, s.publisher, activity.SeatsSuggested(id, numOfTickets, len(seats)))
	return seats, nil
}

func toOccupied(sessionID uuid.UUID, positions []SeatPosition) ([]OccupiedSeat, error) {
	seats := make([]OccupiedSeat, 0, len(positions))
	for _, p := range positions {
		if !seating.InGrid(p.RowNr, p.SeatNr) {
			return nil, fmt.Errorf("%w: row %d seat %d", ErrSeatOutOfGrid, p.RowNr, p.SeatNr)
		}
		seats = append(seats, OccupiedSeat{SessionID: sessionID, RowNr: p.RowNr, SeatNr: p.SeatNr})
	}
	return seats, nil
}

// UpdateOccupancy applies the change and returns the refreshed grid.
func (s *service) UpdateOccupancy(ctx context.Context, id uuid.UUID, req OccupancyRequest) ([]seating.Seat, error) {
	if len(req.Occupied) == 0 && len(req.Freed) == 0 {
		return nil, ErrEmptyOccupancy
	}

	occupy, err := toOccupied(id, req.Occupied)
	if err != nil {
		return nil, err
	}
	free, err := toOccupied(id, req.Freed)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	if err := s.repo.UpdateOccupancy(ctx, id, occupy, free); err != nil {
		return nil, fmt.Errorf("failed to update occupancy: %w", err)
	}
	s.invalidate(ctx, id, false)
	logger.GetDefault().InfoWithContext(ctx, "seat occupancy updated", map[string]interface{}{
		"session_id": id.String(),
		"occupied":   len(occupy),
		"freed":      len(free),
	})

	return s.loadSeatMap(ctx, id)
}
