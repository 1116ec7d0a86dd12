package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naimbob95/ImbaSubVault/internal/models"
)

const categoryColumns = `id, name, description, color, icon, created_at`

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCategory вставляет новую категорию и возвращает созданную запись.
func (s *Storage) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	const op = "storage.CreateCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO categories (id, name, description, color, icon)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + categoryColumns
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query,
		category.ID, category.Name, category.Description, category.Color, category.Icon))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListCategories возвращает все категории, отсортированные по имени.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCategory возвращает категорию по ID или ErrCategoryNotFound.
func (s *Storage) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	const op = "storage.GetCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCategoryByName возвращает категорию по имени или ErrCategoryNotFound.
// Используется для проверки уникальности имени перед вставкой и переименованием.
func (s *Storage) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	const op = "storage.GetCategoryByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCategory частично обновляет категорию и возвращает свежую запись.
func (s *Storage) UpdateCategory(ctx context.Context, id string, input models.UpdateCategoryInput) (*models.Category, error) {
	const op = "storage.UpdateCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE categories
			  SET name = COALESCE($2, name),
			      description = COALESCE($3, description),
			      color = COALESCE($4, color),
			      icon = COALESCE($5, icon)
			  WHERE id = $1
			  RETURNING ` + categoryColumns
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query,
		id, input.Name, input.Description, input.Color, input.Icon))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// DeleteCategory удаляет категорию по ID.
// Подписки, ссылающиеся на неё, не трогаются.
func (s *Storage) DeleteCategory(ctx context.Context, id string) error {
	const op = "storage.DeleteCategory"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM categories WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
	}
	return nil
}
