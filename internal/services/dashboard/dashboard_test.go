package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naimbob95/ImbaSubVault/internal/models"
)

// MockSubscriptionProvider - мок для SubscriptionProvider
type MockSubscriptionProvider struct {
	mock.Mock
}

func (m *MockSubscriptionProvider) ListActive(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionProvider) FindUpcoming(ctx context.Context, userUID string, days int) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionProvider) TotalMonthlyCost(ctx context.Context, userUID string) (float64, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSubscriptionProvider) TotalYearlyCost(ctx context.Context, userUID string) (float64, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSubscriptionProvider) CountByCategory(ctx context.Context, userUID string) (map[string]int, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

var _ SubscriptionProvider = (*MockSubscriptionProvider)(nil)

// TestOverview тестирует сборку полной сводки
func TestOverview(t *testing.T) {
	provider := new(MockSubscriptionProvider)

	active := []*models.Subscription{
		{ID: "sub-1", Name: "Netflix", Cost: 12.99, BillingCycle: "monthly", CategoryName: "Entertainment"},
		{ID: "sub-2", Name: "Spotify", Cost: 120, BillingCycle: "yearly", CategoryName: "Music"},
		{ID: "sub-3", Name: "Coffee", Cost: 5, BillingCycle: "weekly", CategoryName: "Food & Drink"},
		{ID: "sub-4", Name: "News", Cost: 1, BillingCycle: "daily", CategoryName: "News"},
	}
	upcoming := []*models.Subscription{active[0]}

	provider.On("TotalMonthlyCost", mock.Anything, "uid-1").Return(75.07333333333334, nil).Once()
	provider.On("TotalYearlyCost", mock.Anything, "uid-1").Return(900.88, nil).Once()
	provider.On("CountByCategory", mock.Anything, "uid-1").
		Return(map[string]int{"Entertainment": 1, "Music": 1, "Food & Drink": 1, "News": 1}, nil).Once()
	provider.On("FindUpcoming", mock.Anything, "uid-1", DefaultUpcomingDays).Return(upcoming, nil).Once()
	provider.On("ListActive", mock.Anything, "uid-1").Return(active, nil).Once()

	svc := NewDashboardService(provider)
	overview, err := svc.Overview(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Equal(t, 75.07, overview.TotalMonthlyCost)
	assert.Equal(t, 900.88, overview.TotalYearlyCost)
	assert.Equal(t, 4, overview.TotalActiveSubscriptions)
	assert.Equal(t, 18.77, overview.AverageMonthlyCost)
	assert.Equal(t, upcoming, overview.UpcomingPayments)
	// News: 365/12 ≈ 30.42 в месяц — самая дорогая; Spotify: 10 — самая дешёвая
	assert.Equal(t, "News", overview.MostExpensiveSubscription.Name)
	assert.Equal(t, "Spotify", overview.CheapestSubscription.Name)
	provider.AssertExpectations(t)
}

// TestOverview_NoSubscriptions проверяет пустой аккаунт: нули без деления на ноль
func TestOverview_NoSubscriptions(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	provider.On("TotalMonthlyCost", mock.Anything, "uid-1").Return(0.0, nil).Once()
	provider.On("TotalYearlyCost", mock.Anything, "uid-1").Return(0.0, nil).Once()
	provider.On("CountByCategory", mock.Anything, "uid-1").Return(map[string]int{}, nil).Once()
	provider.On("FindUpcoming", mock.Anything, "uid-1", DefaultUpcomingDays).
		Return([]*models.Subscription{}, nil).Once()
	provider.On("ListActive", mock.Anything, "uid-1").Return([]*models.Subscription{}, nil).Once()

	svc := NewDashboardService(provider)
	overview, err := svc.Overview(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Zero(t, overview.TotalMonthlyCost)
	assert.Zero(t, overview.AverageMonthlyCost)
	assert.Zero(t, overview.TotalActiveSubscriptions)
	assert.NotNil(t, overview.UpcomingPayments)
	assert.Empty(t, overview.UpcomingPayments)
	assert.Nil(t, overview.MostExpensiveSubscription)
	assert.Nil(t, overview.CheapestSubscription)
}

// TestOverview_TieKeepsFirst проверяет, что при равной стоимости выбирается
// первая встреченная подписка.
func TestOverview_TieKeepsFirst(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	active := []*models.Subscription{
		{ID: "sub-1", Name: "First", Cost: 10, BillingCycle: "monthly"},
		{ID: "sub-2", Name: "Second", Cost: 10, BillingCycle: "monthly"},
	}
	provider.On("TotalMonthlyCost", mock.Anything, "uid-1").Return(20.0, nil).Once()
	provider.On("TotalYearlyCost", mock.Anything, "uid-1").Return(240.0, nil).Once()
	provider.On("CountByCategory", mock.Anything, "uid-1").Return(map[string]int{}, nil).Once()
	provider.On("FindUpcoming", mock.Anything, "uid-1", DefaultUpcomingDays).
		Return([]*models.Subscription{}, nil).Once()
	provider.On("ListActive", mock.Anything, "uid-1").Return(active, nil).Once()

	svc := NewDashboardService(provider)
	overview, err := svc.Overview(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Equal(t, "First", overview.MostExpensiveSubscription.Name)
	assert.Equal(t, "First", overview.CheapestSubscription.Name)
}

// TestTotalCosts_Rounded проверяет округление на границе ответа
func TestTotalCosts_Rounded(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	provider.On("TotalMonthlyCost", mock.Anything, "uid-1").Return(75.07333333333334, nil).Once()
	provider.On("TotalYearlyCost", mock.Anything, "uid-1").Return(900.8800000000001, nil).Once()

	svc := NewDashboardService(provider)

	monthly, err := svc.TotalMonthlyCost(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 75.07, monthly)

	yearly, err := svc.TotalYearlyCost(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 900.88, yearly)
}

// TestCostBreakdown проверяет группировку расходов по категориям с округлением
// каждой корзины после суммирования.
func TestCostBreakdown(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	provider.On("ListActive", mock.Anything, "uid-1").Return([]*models.Subscription{
		{Cost: 12.99, BillingCycle: "monthly", CategoryName: "Entertainment"},
		{Cost: 120, BillingCycle: "yearly", CategoryName: "Entertainment"},
		{Cost: 5, BillingCycle: "weekly", CategoryName: "Food & Drink"},
	}, nil).Once()

	svc := NewDashboardService(provider)
	breakdown, err := svc.CostBreakdown(context.Background(), "uid-1")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"Entertainment": 22.99,
		"Food & Drink":  21.67,
	}, breakdown)
}

// TestActiveCount тестирует подсчет активных подписок
func TestActiveCount(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	provider.On("ListActive", mock.Anything, "uid-1").Return([]*models.Subscription{
		{ID: "sub-1"}, {ID: "sub-2"},
	}, nil).Once()

	svc := NewDashboardService(provider)
	count, err := svc.ActiveCount(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// TestUpcomingPayments проверяет проброс окна в сервис подписок
func TestUpcomingPayments(t *testing.T) {
	provider := new(MockSubscriptionProvider)
	provider.On("FindUpcoming", mock.Anything, "uid-1", 30).
		Return([]*models.Subscription{{ID: "sub-1"}}, nil).Once()

	svc := NewDashboardService(provider)
	subs, err := svc.UpcomingPayments(context.Background(), "uid-1", 30)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	provider.AssertExpectations(t)
}
