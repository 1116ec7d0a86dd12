// Package category содержит бизнес-логику справочника категорий расходов.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/naimbob95/ImbaSubVault/internal/models"
	"github.com/naimbob95/ImbaSubVault/internal/storage/repository"
)

// CategoryRepository описывает методы хранилища категорий.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, input models.UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryService реализует CRUD категорий и идемпотентное заполнение
// дефолтного набора.
type CategoryService struct {
	repo CategoryRepository
	log  *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// Create добавляет категорию. Имя проверяется на уникальность перед вставкой;
// гонка между проверкой и записью возможна и считается допустимой.
func (s *CategoryService) Create(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	const op = "services.category.Create"

	_, err := s.repo.GetCategoryByName(ctx, input.Name)
	if err == nil {
		return nil, repository.ErrCategoryExists
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category := models.Category{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
	}
	return s.repo.CreateCategory(ctx, category)
}

// List возвращает все категории.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// Get возвращает категорию по ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// Update частично обновляет категорию. Переименование проверяет, что новое
// имя не занято другой категорией.
func (s *CategoryService) Update(ctx context.Context, id string, input models.UpdateCategoryInput) (*models.Category, error) {
	const op = "services.category.Update"

	if input.Name != nil {
		existing, err := s.repo.GetCategoryByName(ctx, *input.Name)
		if err == nil && existing.ID != id {
			return nil, repository.ErrCategoryExists
		}
		if err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.repo.UpdateCategory(ctx, id, input)
}

// Remove удаляет категорию.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

// Seed добавляет дефолтный набор категорий. Идемпотентен: существующие
// категории пропускаются, повторный запуск не создаёт дубликатов.
func (s *CategoryService) Seed(ctx context.Context) error {
	const op = "services.category.Seed"

	for _, c := range defaultCategories() {
		_, err := s.repo.GetCategoryByName(ctx, c.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		c.ID = uuid.NewString()
		if _, err := s.repo.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("seeded category", slog.String("name", c.Name))
	}
	return nil
}

// defaultCategories возвращает фиксированный набор категорий по умолчанию.
func defaultCategories() []models.Category {
	return []models.Category{
		{
			Name:        "Entertainment",
			Description: "Streaming services, music, games, and entertainment subscriptions",
			Color:       "#FF6B6B",
			Icon:        "entertainment",
		},
		{
			Name:        "Software",
			Description: "Development tools, productivity software, and SaaS applications",
			Color:       "#4ECDC4",
			Icon:        "software",
		},
		{
			Name:        "Utilities",
			Description: "Cloud storage, hosting, and utility services",
			Color:       "#45B7D1",
			Icon:        "utilities",
		},
		{
			Name:        "News & Media",
			Description: "News subscriptions, magazines, and media services",
			Color:       "#96CEB4",
			Icon:        "news",
		},
		{
			Name:        "Health & Fitness",
			Description: "Fitness apps, health monitoring, and wellness services",
			Color:       "#FFEAA7",
			Icon:        "health",
		},
		{
			Name:        "Education",
			Description: "Online courses, learning platforms, and educational content",
			Color:       "#DDA0DD",
			Icon:        "education",
		},
		{
			Name:        "Business",
			Description: "Business tools, CRM, and professional services",
			Color:       "#F39C12",
			Icon:        "business",
		},
		{
			Name:        "Other",
			Description: "Other miscellaneous subscriptions",
			Color:       "#95A5A6",
			Icon:        "other",
		},
	}
}
