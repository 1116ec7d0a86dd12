package category

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naimbob95/ImbaSubVault/internal/models"
	"github.com/naimbob95/ImbaSubVault/internal/storage/repository"
)

// MockCategoryRepository - мок для CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, id string, input models.UpdateCategoryInput) (*models.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ CategoryRepository = (*MockCategoryRepository)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestCreate тестирует создание категории и конфликт имен
func TestCreate(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetCategoryByName", mock.Anything, "Gaming").
			Return(nil, repository.ErrCategoryNotFound).Once()
		repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c models.Category) bool {
			return c.Name == "Gaming" && c.ID != ""
		})).Return(&models.Category{ID: "cat-1", Name: "Gaming"}, nil).Once()

		svc := NewCategoryService(repo, testLogger())
		created, err := svc.Create(context.Background(), models.CategoryInput{
			Name: "Gaming", Color: "#FF0000", Icon: "gaming",
		})
		require.NoError(t, err)
		assert.Equal(t, "Gaming", created.Name)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetCategoryByName", mock.Anything, "Gaming").
			Return(&models.Category{ID: "cat-1", Name: "Gaming"}, nil).Once()

		svc := NewCategoryService(repo, testLogger())
		created, err := svc.Create(context.Background(), models.CategoryInput{
			Name: "Gaming", Color: "#FF0000", Icon: "gaming",
		})
		assert.ErrorIs(t, err, repository.ErrCategoryExists)
		assert.Nil(t, created)
		repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})
}

// TestUpdate_Rename тестирует проверку занятости имени при переименовании
func TestUpdate_Rename(t *testing.T) {
	t.Run("rename to taken name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		name := "Music"
		repo.On("GetCategoryByName", mock.Anything, "Music").
			Return(&models.Category{ID: "cat-2", Name: "Music"}, nil).Once()

		svc := NewCategoryService(repo, testLogger())
		_, err := svc.Update(context.Background(), "cat-1", models.UpdateCategoryInput{Name: &name})
		assert.ErrorIs(t, err, repository.ErrCategoryExists)
	})

	t.Run("rename to own name is allowed", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		name := "Music"
		repo.On("GetCategoryByName", mock.Anything, "Music").
			Return(&models.Category{ID: "cat-1", Name: "Music"}, nil).Once()
		repo.On("UpdateCategory", mock.Anything, "cat-1", mock.Anything).
			Return(&models.Category{ID: "cat-1", Name: "Music"}, nil).Once()

		svc := NewCategoryService(repo, testLogger())
		updated, err := svc.Update(context.Background(), "cat-1", models.UpdateCategoryInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "cat-1", updated.ID)
	})

	t.Run("update without rename skips name check", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		color := "#123456"
		repo.On("UpdateCategory", mock.Anything, "cat-1", mock.Anything).
			Return(&models.Category{ID: "cat-1"}, nil).Once()

		svc := NewCategoryService(repo, testLogger())
		_, err := svc.Update(context.Background(), "cat-1", models.UpdateCategoryInput{Color: &color})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "GetCategoryByName", mock.Anything, mock.Anything)
	})
}

// TestSeed тестирует идемпотентный посев стандартных категорий
func TestSeed(t *testing.T) {
	t.Run("empty table gets all defaults", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetCategoryByName", mock.Anything, mock.Anything).
			Return(nil, repository.ErrCategoryNotFound).Times(len(defaultCategories()))
		repo.On("CreateCategory", mock.Anything, mock.Anything).
			Return(&models.Category{}, nil).Times(len(defaultCategories()))

		svc := NewCategoryService(repo, testLogger())
		require.NoError(t, svc.Seed(context.Background()))
		repo.AssertExpectations(t)
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetCategoryByName", mock.Anything, mock.Anything).
			Return(&models.Category{ID: "cat-1"}, nil)

		svc := NewCategoryService(repo, testLogger())
		require.NoError(t, svc.Seed(context.Background()))
		repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})
}

// TestDefaultCategories проверяет состав стандартного набора
func TestDefaultCategories(t *testing.T) {
	defaults := defaultCategories()
	require.Len(t, defaults, 8)

	names := make([]string, 0, len(defaults))
	for _, c := range defaults {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Color, "category %s has no color", c.Name)
		assert.NotEmpty(t, c.Icon, "category %s has no icon", c.Name)
	}
	assert.Contains(t, names, "Entertainment")
	assert.Contains(t, names, "Other")
}
