package languages

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
	ErrLanguageNotFound    = errors.New("language not found")
	ErrLanguageExists      = errors.New("a language with similar text already exists")
	ErrLanguageInUse       = errors.New("language is used by scheduled sessions")
	ErrInvalidLanguageText = errors.New("language text must contain at least one alphanumeric character")
)

type Service interface {
	CreateLanguage(ctx context.Context, req LanguageRequest) (*LanguageResponse, error)
	GetLanguageByID(ctx context.Context, id uuid.UUID) (*LanguageResponse, error)
	GetAllLanguages(ctx context.Context) ([]LanguageResponse, error)
	UpdateLanguage(ctx context.Context, id uuid.UUID, req LanguageRequest) (*LanguageResponse, error)
	DeleteLanguage(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) error

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidate(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_LANGUAGES_ALL); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to invalidate language cache", err, nil)
	}
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*Language, error) {
	language, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return language, nil
}

// checkSlug rejects a slug already owned by another language.
func (s *service) checkSlug(ctx context.Context, languageSlug string, self uuid.UUID) error {
	existing, err := s.repo.GetBySlug(ctx, languageSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check existing language: %w", err)
	}
	if existing.ID != self {
		return ErrLanguageExists
	}
	return nil
}

func (s *service) CreateLanguage(ctx context.Context, req LanguageRequest) (*LanguageResponse, error) {
	text := strings.TrimSpace(req.Text)
	languageSlug := slug.Make(text)
	if languageSlug == "" {
		return nil, ErrInvalidLanguageText
	}
	if err := s.checkSlug(ctx, languageSlug, uuid.Nil); err != nil {
		return nil, err
	}

	language := &Language{Text: text, Slug: languageSlug}
	if err := s.repo.Create(ctx, language); err != nil {
		return nil, fmt.Errorf("failed to create language: %w", err)
	}
	s.invalidate(ctx)

	resp := language.ToResponse()
	return &resp, nil
}

func (s *service) GetLanguageByID(ctx context.Context, id uuid.UUID) (*LanguageResponse, error) {
	language, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := language.ToResponse()
	return &resp, nil
}

func (s *service) GetAllLanguages(ctx context.Context) ([]LanguageResponse, error) {
	load := func() ([]LanguageResponse, error) {
		languages, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list languages: %w", err)
		}
		out := make([]LanguageResponse, 0, len(languages))
		for i := range languages {
			out = append(out, languages[i].ToResponse())
		}
		return out, nil
	}

	if s.cacheService == nil {
		return load()
	}

	var out []LanguageResponse
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_LANGUAGES_ALL, constants.TTL_LANGUAGES,
		func() (interface{}, error) { return load() }, &out)
	return out, err
}

func (s *service) UpdateLanguage(ctx context.Context, id uuid.UUID, req LanguageRequest) (*LanguageResponse, error) {
	language, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	languageSlug := slug.Make(text)
	if languageSlug == "" {
		return nil, ErrInvalidLanguageText
	}
	if languageSlug != language.Slug {
		if err := s.checkSlug(ctx, languageSlug, language.ID); err != nil {
			return nil, err
		}
	}

	language.Text = text
	language.Slug = languageSlug
	if err := s.repo.Update(ctx, language); err != nil {
		return nil, fmt.Errorf("failed to update language: %w", err)
	}
	s.invalidate(ctx)

	resp := language.ToResponse()
	return &resp, nil
}

func (s *service) DeleteLanguage(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.repo.CountSessions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check language usage: %w", err)
	}
	if inUse > 0 {
		return ErrLanguageInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLanguageNotFound
		}
		return fmt.Errorf("failed to delete language: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Exists reports ErrLanguageNotFound for unknown IDs.
func (s *service) Exists(ctx context.Context, id uuid.UUID) error {
	_, err := s.find(ctx, id)
	return err
}
