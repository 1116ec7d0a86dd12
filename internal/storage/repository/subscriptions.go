package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/naimbob95/ImbaSubVault/internal/models"
)

const subscriptionColumns = `s.id, s.user_uid, s.category_id, c.name, s.name, s.description,
			  s.cost, s.currency, s.billing_cycle, s.start_date, s.next_payment_date,
			  s.is_active, s.website, s.notes, s.created_at, s.updated_at`

const subscriptionFrom = ` FROM subscriptions s
			  LEFT JOIN categories c ON c.id = s.category_id`

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var categoryName, description, website, notes sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.CategoryID, &categoryName, &sub.Name,
		&description, &sub.Cost, &sub.Currency, &sub.BillingCycle, &sub.StartDate,
		&sub.NextPaymentDate, &sub.IsActive, &website, &notes,
		&sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	sub.CategoryName = categoryName.String
	sub.Description = description.String
	sub.Website = website.String
	sub.Notes = notes.String
	return sub, nil
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateSubscription вставляет новую подписку и возвращает созданную запись
// с заполненным именем категории.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, user_uid, category_id, name, description, cost,
			      currency, billing_cycle, start_date, next_payment_date, is_active, website, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.ID, sub.UserUID, sub.CategoryID, sub.Name, sub.Description, sub.Cost,
		sub.Currency, sub.BillingCycle, sub.StartDate, sub.NextPaymentDate,
		sub.IsActive, sub.Website, sub.Notes).Scan(&newID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetSubscription(ctx, newID, sub.UserUID)
}

// GetSubscription возвращает подписку по паре (id, user_uid).
// Чужая подписка неотличима от отсутствующей: ErrSubscriptionNotFound.
func (s *Storage) GetSubscription(ctx context.Context, id, userUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + subscriptionFrom + `
			  WHERE s.id = $1 AND s.user_uid = $2`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptionsByUser возвращает все подписки пользователя.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + subscriptionFrom + `
			  WHERE s.user_uid = $1
			  ORDER BY s.created_at`
	return s.querySubscriptions(ctx, op, query, userUID)
}

// ListSubscriptionsByCategory возвращает подписки пользователя в категории.
func (s *Storage) ListSubscriptionsByCategory(ctx context.Context, userUID, categoryID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + subscriptionFrom + `
			  WHERE s.user_uid = $1 AND s.category_id = $2
			  ORDER BY s.created_at`
	return s.querySubscriptions(ctx, op, query, userUID, categoryID)
}

// ListActiveByUser возвращает активные подписки пользователя.
func (s *Storage) ListActiveByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListActiveByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + subscriptionFrom + `
			  WHERE s.user_uid = $1 AND s.is_active = true
			  ORDER BY s.created_at`
	return s.querySubscriptions(ctx, op, query, userUID)
}

// ListUpcomingPayments возвращает активные подписки с датой списания
// в интервале [from, to], обе границы включительно.
func (s *Storage) ListUpcomingPayments(ctx context.Context, userUID string, from, to time.Time) ([]*models.Subscription, error) {
	const op = "storage.ListUpcomingPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + subscriptionFrom + `
			  WHERE s.user_uid = $1
			    AND s.is_active = true
			    AND s.next_payment_date >= $2
			    AND s.next_payment_date <= $3
			  ORDER BY s.next_payment_date`
	return s.querySubscriptions(ctx, op, query, userUID, from, to)
}

// UpdateSubscription обновляет подписку по паре (id, user_uid) и возвращает
// свежую запись либо ErrSubscriptionNotFound.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription, id, userUID string) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET category_id = $3, name = $4, description = $5, cost = $6, currency = $7,
			      billing_cycle = $8, start_date = $9, next_payment_date = $10,
			      is_active = $11, website = $12, notes = $13, updated_at = now()
			  WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query,
		id, userUID, sub.CategoryID, sub.Name, sub.Description, sub.Cost, sub.Currency,
		sub.BillingCycle, sub.StartDate, sub.NextPaymentDate, sub.IsActive,
		sub.Website, sub.Notes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	return s.GetSubscription(ctx, id, userUID)
}

// DeleteSubscription удаляет подписку по паре (id, user_uid).
func (s *Storage) DeleteSubscription(ctx context.Context, id, userUID string) error {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	return nil
}
