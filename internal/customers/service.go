package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movieapp/internal/activity"
	"movieapp/internal/movies"
	"movieapp/internal/recommendation"
	"movieapp/internal/sessions"
	"movieapp/internal/shared/constants"
	"movieapp/pkg/cache"
	"movieapp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailTaken       = errors.New("email is already used by another customer")
	ErrInvalidBirthDate = errors.New("birth_date must be a past date formatted as YYYY-MM-DD")
)

// WatchedMovieStore lists the movies of a customer's past sessions.
type WatchedMovieStore interface {
	GetWatchedMovies(ctx context.Context, customerID uuid.UUID) ([]movies.Movie, error)
}

// WeekMovieStore lists the movies screened this week.
type WeekMovieStore interface {
	GetWeekMovies(ctx context.Context) ([]movies.Movie, error)
}

// SessionLookup confirms that a session exists.
type SessionLookup interface {
	GetSessionByID(ctx context.Context, id uuid.UUID) (*sessions.SessionResponse, error)
}

type Service interface {
	CreateCustomer(ctx context.Context, req CustomerRequest) (*CustomerResponse, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error)
	GetAllCustomers(ctx context.Context, query CustomerListQuery) (*PaginatedCustomers, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	GetHistory(ctx context.Context, id uuid.UUID) (*HistoryResponse, error)
	AddToHistory(ctx context.Context, id uuid.UUID, req HistoryRequest) (*HistoryResponse, error)
	GetWatchedMovies(ctx context.Context, id uuid.UUID) ([]movies.MovieResponse, error)
	// GetRecommendations suggests this week's movies from the customer's history.
	GetRecommendations(ctx context.Context, id uuid.UUID) ([]movies.MovieResponse, error)

	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher activity.Publisher)
}

type service struct {
	repo         Repository
	watched      WatchedMovieStore
	week         WeekMovieStore
	sessions     SessionLookup
	cacheService cache.Service
	publisher    activity.Publisher
	now          func() time.Time
}

func NewService(repo Repository, watched WatchedMovieStore, week WeekMovieStore, sessionLookup SessionLookup) Service {
	return &service{
		repo:     repo,
		watched:  watched,
		week:     week,
		sessions: sessionLookup,
		now:      time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetPublisher(publisher activity.Publisher) {
	s.publisher = publisher
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.BuildCustomerRecommendationsPattern(id.String())); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate customer cache", err, map[string]interface{}{
			"customer_id": id.String(),
		})
	}
}

// build maps the request onto customer and checks the email is free for it.
func (s *service) build(ctx context.Context, customer *Customer, req CustomerRequest) error {
	born, err := time.Parse(time.DateOnly, req.BornOn)
	if err != nil || !born.Before(time.Now()) {
		return ErrInvalidBirthDate
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil && existing.ID != customer.ID {
		return ErrEmailTaken
	}

	if err := copier.Copy(customer, &req); err != nil {
		return fmt.Errorf("failed to map customer: %w", err)
	}
	customer.FirstName = strings.TrimSpace(customer.FirstName)
	customer.LastName = strings.TrimSpace(customer.LastName)
	customer.Email = email
	customer.BirthDate = born
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *service) CreateCustomer(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	customer := &Customer{}
	if err := s.build(ctx, customer, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	resp := customer.ToResponse()
	return &resp, nil
}

func (s *service) GetCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := customer.ToResponse()
	return &resp, nil
}

func (s *service) GetAllCustomers(ctx context.Context, query CustomerListQuery) (*PaginatedCustomers, error) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	list, total, err := s.repo.GetAll(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	resp := make([]CustomerResponse, 0, len(list))
	for i := range list {
		resp = append(resp, list[i].ToResponse())
	}
	return &PaginatedCustomers{
		Customers:  resp,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.build(ctx, customer, req); err != nil {
		return nil, err
	}
	customer.ID = id

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	resp := customer.ToResponse()
	return &resp, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) GetHistory(ctx context.Context, id uuid.UUID) (*HistoryResponse, error) {
	history, err := s.repo.GetHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	resp := &HistoryResponse{
		CustomerID: id.String(),
		Sessions:   make([]sessions.SessionResponse, 0, len(history)),
	}
	for i := range history {
		resp.Sessions = append(resp.Sessions, history[i].ToResponse())
	}
	return resp, nil
}

func (s *service) AddToHistory(ctx context.Context, id uuid.UUID, req HistoryRequest) (*HistoryResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.sessions.GetSessionByID(ctx, req.SessionID); err != nil {
		return nil, err
	}

	if err := s.repo.AddToHistory(ctx, id, req.SessionID); err != nil {
		return nil, fmt.Errorf("failed to add session to history: %w", err)
	}
	s.invalidate(ctx, id)

	return s.GetHistory(ctx, id)
}

func (s *service) GetWatchedMovies(ctx context.Context, id uuid.UUID) ([]movies.MovieResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	watched, err := s.watched.GetWatchedMovies(ctx, id)
	if err != nil {
		return nil, err
	}
	return movies.ToResponses(watched), nil
}

func (s *service) recommend(ctx context.Context, id uuid.UUID) ([]movies.MovieResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	watched, err := s.watched.GetWatchedMovies(ctx, id)
	if err != nil {
		return nil, err
	}
	week, err := s.week.GetWeekMovies(ctx)
	if err != nil {
		return nil, err
	}

	recommended := recommendation.Recommend(watched, week)
	logger.GetDefault().LogRecommendationsServed(ctx, id.String(), len(watched), len(recommended))
	return movies.ToResponses(recommended), nil
}

func (s *service) GetRecommendations(ctx context.Context, id uuid.UUID) ([]movies.MovieResponse, error) {
	var recommended []movies.MovieResponse
	if s.cacheService == nil {
		var err error
		if recommended, err = s.recommend(ctx, id); err != nil {
			return nil, err
		}
	} else {
		weekStart, _ := movies.WeekBounds(s.now())
		err := s.cacheService.GetOrSet(ctx, constants.BuildRecommendationsKey(id.String(), weekStart), constants.TTL_CUSTOMER_RECOMMENDATIONS,
			func() (interface{}, error) { return s.recommend(ctx, id) }, &recommended)
		if err != nil {
			return nil, err
		}
	}

	movieIDs := make([]uuid.UUID, 0, len(recommended))
	for _, m := range recommended {
		if movieID, err := uuid.Parse(m.ID); err == nil {
			movieIDs = append(movieIDs, movieID)
		}
	}
	activity.PublishAsync(ctx, s.publisher, activity.RecommendationsServed(id, movieIDs))
	return recommended, nil
}
