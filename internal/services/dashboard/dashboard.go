// Package dashboard агрегирует статистику по подпискам пользователя.
//
// Сервис не хранит собственного состояния: все данные берутся из сервиса
// подписок и сворачиваются в сводные показатели. Денежные значения
// округляются до двух знаков только здесь, на границе ответа.
package dashboard

import (
	"context"

	"github.com/naimbob95/ImbaSubVault/internal/lib/billing"
	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// DefaultUpcomingDays — окно «ближайших платежей» по умолчанию.
const DefaultUpcomingDays = 7

// SubscriptionProvider описывает методы сервиса подписок, которые использует дашборд.
type SubscriptionProvider interface {
	ListActive(ctx context.Context, userUID string) ([]*models.Subscription, error)
	FindUpcoming(ctx context.Context, userUID string, days int) ([]*models.Subscription, error)
	TotalMonthlyCost(ctx context.Context, userUID string) (float64, error)
	TotalYearlyCost(ctx context.Context, userUID string) (float64, error)
	CountByCategory(ctx context.Context, userUID string) (map[string]int, error)
}

// DashboardService сводит данные сервиса подписок в показатели дашборда.
type DashboardService struct {
	subs SubscriptionProvider
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(subs SubscriptionProvider) *DashboardService {
	return &DashboardService{subs: subs}
}

// Overview собирает полную сводку: суммарные расходы, распределение по
// категориям, ближайшие платежи и самую дорогую/дешёвую подписку по
// месячному эквиваленту. При равенстве стоимостей выбирается первая
// встреченная подписка.
func (s *DashboardService) Overview(ctx context.Context, userUID string) (*models.DashboardOverview, error) {
	totalMonthly, err := s.subs.TotalMonthlyCost(ctx, userUID)
	if err != nil {
		return nil, err
	}
	totalYearly, err := s.subs.TotalYearlyCost(ctx, userUID)
	if err != nil {
		return nil, err
	}
	counts, err := s.subs.CountByCategory(ctx, userUID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.subs.FindUpcoming(ctx, userUID, DefaultUpcomingDays)
	if err != nil {
		return nil, err
	}
	active, err := s.subs.ListActive(ctx, userUID)
	if err != nil {
		return nil, err
	}

	activeCount := len(active)
	averageMonthly := 0.0
	if activeCount > 0 {
		averageMonthly = totalMonthly / float64(activeCount)
	}

	var mostExpensive, cheapest *models.Subscription
	var maxCost, minCost float64
	for _, sub := range active {
		monthly := billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle)
		if mostExpensive == nil || monthly > maxCost {
			mostExpensive = sub
			maxCost = monthly
		}
		if cheapest == nil || monthly < minCost {
			cheapest = sub
			minCost = monthly
		}
	}

	if upcoming == nil {
		upcoming = []*models.Subscription{}
	}

	return &models.DashboardOverview{
		TotalMonthlyCost:            billing.Round2(totalMonthly),
		TotalYearlyCost:             billing.Round2(totalYearly),
		SubscriptionCountByCategory: counts,
		UpcomingPayments:            upcoming,
		TotalActiveSubscriptions:    activeCount,
		AverageMonthlyCost:          billing.Round2(averageMonthly),
		MostExpensiveSubscription:   mostExpensive,
		CheapestSubscription:        cheapest,
	}, nil
}

// UpcomingPayments возвращает ближайшие платежи за окно days.
func (s *DashboardService) UpcomingPayments(ctx context.Context, userUID string, days int) ([]*models.Subscription, error) {
	return s.subs.FindUpcoming(ctx, userUID, days)
}

// TotalMonthlyCost возвращает суммарный месячный расход, округлённый до 2 знаков.
func (s *DashboardService) TotalMonthlyCost(ctx context.Context, userUID string) (float64, error) {
	total, err := s.subs.TotalMonthlyCost(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return billing.Round2(total), nil
}

// TotalYearlyCost возвращает суммарный годовой расход, округлённый до 2 знаков.
func (s *DashboardService) TotalYearlyCost(ctx context.Context, userUID string) (float64, error) {
	total, err := s.subs.TotalYearlyCost(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return billing.Round2(total), nil
}

// CountByCategory возвращает количество активных подписок по категориям.
func (s *DashboardService) CountByCategory(ctx context.Context, userUID string) (map[string]int, error) {
	return s.subs.CountByCategory(ctx, userUID)
}

// ActiveCount возвращает число активных подписок.
func (s *DashboardService) ActiveCount(ctx context.Context, userUID string) (int, error) {
	active, err := s.subs.ListActive(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

// CostBreakdown группирует месячные эквиваленты активных подписок по именам
// категорий. Округление применяется к каждой корзине после суммирования.
func (s *DashboardService) CostBreakdown(ctx context.Context, userUID string) (map[string]float64, error) {
	active, err := s.subs.ListActive(ctx, userUID)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64)
	for _, sub := range active {
		breakdown[sub.CategoryName] += billing.MonthlyEquivalent(sub.Cost, sub.BillingCycle)
	}
	for name, total := range breakdown {
		breakdown[name] = billing.Round2(total)
	}
	return breakdown, nil
}
