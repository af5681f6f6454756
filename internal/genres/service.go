package genres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movieapp/internal/shared/constants"
	"movieapp/pkg/cache"
	"movieapp/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrGenreNotFound    = errors.New("genre not found")
	ErrGenreExists      = errors.New("a genre with similar text already exists")
	ErrInvalidGenreText = errors.New("genre text must contain at least one alphanumeric character")
)

type Service interface {
	CreateGenre(ctx context.Context, req CreateGenreRequest) (*GenreResponse, error)
	GetGenreByID(ctx context.Context, id uuid.UUID) (*GenreResponse, error)
	GetGenreBySlug(ctx context.Context, slug string) (*GenreResponse, error)
	GetAllGenres(ctx context.Context) ([]GenreResponse, error)
	UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest) (*GenreResponse, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error

	// ResolveGenres loads genres for a movie write; every ID must exist.
	ResolveGenres(ctx context.Context, ids []uuid.UUID) ([]Genre, error)

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidate(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_GENRES_ALL); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate genre cache", err, nil)
	}
	// Cached movie payloads embed genre text
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_ALL); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate movie cache", err, nil)
	}
}

func (s *service) CreateGenre(ctx context.Context, req CreateGenreRequest) (*GenreResponse, error) {
	text := strings.TrimSpace(req.Text)
	genreSlug := slug.Make(text)
	if genreSlug == "" {
		return nil, ErrInvalidGenreText
	}

	existing, err := s.repo.GetBySlug(ctx, genreSlug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing genre: %w", err)
	}
	if existing != nil {
		return nil, ErrGenreExists
	}

	genre := &Genre{Text: text, Slug: genreSlug}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	s.invalidate(ctx)

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) GetGenreByID(ctx context.Context, id uuid.UUID) (*GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) GetGenreBySlug(ctx context.Context, genreSlug string) (*GenreResponse, error) {
	load := func() (*GenreResponse, error) {
		genre, err := s.repo.GetBySlug(ctx, genreSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGenreNotFound
			}
			return nil, fmt.Errorf("failed to get genre: %w", err)
		}
		resp := genre.ToResponse()
		return &resp, nil
	}

	if s.cacheService == nil {
		return load()
	}

	var resp GenreResponse
	err := s.cacheService.GetOrSet(ctx, constants.BuildGenreBySlugKey(genreSlug), constants.TTL_GENRES,
		func() (interface{}, error) { return load() }, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) GetAllGenres(ctx context.Context) ([]GenreResponse, error) {
	load := func() ([]GenreResponse, error) {
		genres, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list genres: %w", err)
		}
		out := make([]GenreResponse, 0, len(genres))
		for i := range genres {
			out = append(out, genres[i].ToResponse())
		}
		return out, nil
	}

	if s.cacheService == nil {
		return load()
	}

	var out []GenreResponse
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_GENRES_ALL, constants.TTL_GENRES,
		func() (interface{}, error) { return load() }, &out)
	return out, err
}

func (s *service) UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest) (*GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}

	text := strings.TrimSpace(req.Text)
	genreSlug := slug.Make(text)
	if genreSlug == "" {
		return nil, ErrInvalidGenreText
	}

	if genreSlug != genre.Slug {
		existing, err := s.repo.GetBySlug(ctx, genreSlug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing genre: %w", err)
		}
		if existing != nil && existing.ID != genre.ID {
			return nil, ErrGenreExists
		}
	}

	genre.Text = text
	genre.Slug = genreSlug
	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}
	s.invalidate(ctx)

	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) ResolveGenres(ctx context.Context, ids []uuid.UUID) ([]Genre, error) {
	genres, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	found := make(map[uuid.UUID]struct{}, len(genres))
	for _, g := range genres {
		found[g.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrGenreNotFound, id)
		}
	}
	return genres, nil
}
