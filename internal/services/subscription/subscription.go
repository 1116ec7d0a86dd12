// Package subscription содержит бизнес-логику управления подписками,
// включая кеширование одиночных чтений и нормализацию стоимости.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/naimbob95/ImbaSubVault/internal/lib/billing"
	"github.com/naimbob95/ImbaSubVault/internal/lib/sl"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

const startDateLayout = "2006-01-02"

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
// Все операции над одной записью принимают пару (id, userUID): чужая подписка
// неотличима от отсутствующей.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id, userUID string) (*models.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userUID string) ([]*models.Subscription, error)
	ListSubscriptionsByCategory(ctx context.Context, userUID, categoryID string) ([]*models.Subscription, error)
	ListActiveByUser(ctx context.Context, userUID string) ([]*models.Subscription, error)
	ListUpcomingPayments(ctx context.Context, userUID string, from, to time.Time) ([]*models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub models.Subscription, id, userUID string) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, id, userUID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(userUID, id string) string {
	return fmt.Sprintf("subscription:%s:%s", userUID, id)
}

// buildSubscription собирает доменную модель из входных данных запроса.
func buildSubscription(userUID string, req models.SubscriptionInput) (models.Subscription, error) {
	startDate, err := time.Parse(startDateLayout, req.StartDate)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("invalid start date: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return models.Subscription{
		UserUID:         userUID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Cost:            req.Cost,
		Currency:        currency,
		BillingCycle:    req.BillingCycle,
		StartDate:       startDate,
		NextPaymentDate: billing.NextPaymentDate(startDate, req.BillingCycle, time.Now()),
		IsActive:        isActive,
		Website:         req.Website,
		Notes:           req.Notes,
	}, nil
}

// Create создает новую подписку пользователя, кеширует её и возвращает запись.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.SubscriptionInput) (*models.Subscription, error) {
	entry, err := buildSubscription(userUID, req)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()

	created, err := s.repo.CreateSubscription(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.String("id", created.ID))

	key := cacheKey(userUID, created.ID)
	if err := s.cache.Set(key, created, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
	}

	return created, nil
}

// Get возвращает подписку по ID, используя кеш или репозиторий.
func (s *SubscriptionService) Get(ctx context.Context, id, userUID string) (*models.Subscription, error) {
	var result *models.Subscription
	key := cacheKey(userUID, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", key), sl.Err(err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.GetSubscription(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

// ListByUser возвращает все подписки пользователя.
func (s *SubscriptionService) ListByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptionsByUser(ctx, userUID)
}

// ListByCategory возвращает подписки пользователя в заданной категории.
func (s *SubscriptionService) ListByCategory(ctx context.Context, userUID, categoryID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptionsByCategory(ctx, userUID, categoryID)
}

// ListActive возвращает активные подписки пользователя.
func (s *SubscriptionService) ListActive(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	return s.repo.ListActiveByUser(ctx, userUID)
}

// FindUpcoming возвращает активные подписки с датой списания в пределах
// [now, now+days], обе границы включительно.
func (s *SubscriptionService) FindUpcoming(ctx context.Context, userUID string, days int) ([]*models.Subscription, error) {
	now := time.Now()
	return s.repo.ListUpcomingPayments(ctx, userUID, now, now.AddDate(0, 0, days))
}

// Update обновляет подписку и кеш. Несовпадение владельца даёт
// ErrSubscriptionNotFound из репозитория.
func (s *SubscriptionService) Update(ctx context.Context, id, userUID string, req models.SubscriptionInput) (*models.Subscription, error) {
	entry, err := buildSubscription(userUID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateSubscription(ctx, entry, id, userUID)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.String("id", id))

	key := cacheKey(userUID, id)
	if err := s.cache.Set(key, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
	}
	return updated, nil
}

// Remove удаляет подписку и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id, userUID string) error {
	key := cacheKey(userUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}

	return s.repo.DeleteSubscription(ctx, id, userUID)
}

// TotalMonthlyCost суммирует месячные эквиваленты активных подписок.
// Результат не округляется: округление выполняется на границе ответа.
func (s *SubscriptionService) TotalMonthlyCost(ctx context.Context, userUID string) (float64, error) {
	subs, err := s.repo.ListActiveByUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, sub := range subs {
		total += billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle)
	}
	return total, nil
}

// TotalYearlyCost суммирует годовые эквиваленты активных подписок.
func (s *SubscriptionService) TotalYearlyCost(ctx context.Context, userUID string) (float64, error) {
	subs, err := s.repo.ListActiveByUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, sub := range subs {
		total += billing.YearlyEquivalent(sub.Cost, sub.BillingCycle)
	}
	return total, nil
}

// CountByCategory возвращает количество активных подписок по именам категорий.
func (s *SubscriptionService) CountByCategory(ctx context.Context, userUID string) (map[string]int, error) {
	subs, err := s.repo.ListActiveByUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, sub := range subs {
		counts[sub.CategoryName]++
	}
	return counts, nil
}
