package genres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, genre *Genre) error {
	args := m.Called(ctx, genre)
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Genre, error) {
	args := m.Called(ctx, id)
	genre, _ := args.Get(0).(*Genre)
	return genre, args.Error(1)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*Genre, error) {
	args := m.Called(ctx, slug)
	genre, _ := args.Get(0).(*Genre)
	return genre, args.Error(1)
}

func (m *mockRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Genre, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, genre *Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreateGenre_SlugifiesText(t *testing.T) {
	repo := new(mockRepository)
	ctx := context.Background()
	repo.On("GetBySlug", ctx, "science-fiction").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(g *Genre) bool {
		return g.Text == "Science Fiction" && g.Slug == "science-fiction"
	})).Return(nil)

	got, err := NewService(repo).CreateGenre(ctx, CreateGenreRequest{Text: "  Science Fiction "})

	require.NoError(t, err)
	assert.Equal(t, "science-fiction", got.Slug)
	assert.Equal(t, "Science Fiction", got.Text)
	repo.AssertExpectations(t)
}

func TestCreateGenre_RejectsDuplicateSlug(t *testing.T) {
	repo := new(mockRepository)
	ctx := context.Background()
	repo.On("GetBySlug", ctx, "drama").Return(&Genre{ID: uuid.New(), Text: "Drama", Slug: "drama"}, nil)

	_, err := NewService(repo).CreateGenre(ctx, CreateGenreRequest{Text: "DRAMA"})

	assert.ErrorIs(t, err, ErrGenreExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGenre_RejectsPunctuationOnly(t *testing.T) {
	_, err := NewService(new(mockRepository)).CreateGenre(context.Background(), CreateGenreRequest{Text: "!!"})

	assert.ErrorIs(t, err, ErrInvalidGenreText)
}

func TestGetGenreByID_MapsRecordNotFound(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo).GetGenreByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestUpdateGenre_KeepsOwnSlug(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&Genre{ID: id, Text: "comedy", Slug: "comedy"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	got, err := NewService(repo).UpdateGenre(context.Background(), id, UpdateGenreRequest{Text: "Comedy"})

	require.NoError(t, err)
	assert.Equal(t, "Comedy", got.Text)
	repo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestDeleteGenre_NotFound(t *testing.T) {
	repo := new(mockRepository)
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, NewService(repo).DeleteGenre(context.Background(), id), ErrGenreNotFound)
}

func TestResolveGenres_RequiresEveryID(t *testing.T) {
	repo := new(mockRepository)
	known, missing := uuid.New(), uuid.New()
	repo.On("GetByIDs", mock.Anything, []uuid.UUID{known, missing}).
		Return([]Genre{{ID: known, Text: "Action", Slug: "action"}}, nil)

	_, err := NewService(repo).ResolveGenres(context.Background(), []uuid.UUID{known, missing})

	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.Contains(t, err.Error(), missing.String())
}
