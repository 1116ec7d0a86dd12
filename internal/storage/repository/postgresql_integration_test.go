package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_ListUpcomingPayments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	userUID := uuid.New().String()
	categoryID := uuid.New().String()
	factory.CreateUser(t, userUID, "test@example.com", "hashedpassword")
	factory.CreateCategory(t, categoryID, "Entertainment")

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	factory.CreateSubscription(t, userUID, categoryID, "OnLowerBound", 10, "monthly", from, true)
	factory.CreateSubscription(t, userUID, categoryID, "Inside", 10, "monthly", from.AddDate(0, 0, 3), true)
	factory.CreateSubscription(t, userUID, categoryID, "OnUpperBound", 10, "monthly", to, true)
	factory.CreateSubscription(t, userUID, categoryID, "BeforeWindow", 10, "monthly", from.AddDate(0, 0, -1), true)
	factory.CreateSubscription(t, userUID, categoryID, "AfterWindow", 10, "monthly", to.AddDate(0, 0, 1), true)
	factory.CreateSubscription(t, userUID, categoryID, "InactiveInside", 10, "monthly", from.AddDate(0, 0, 2), false)

	got, err := storage.ListUpcomingPayments(context.Background(), userUID, from, to)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, sub := range got {
		names = append(names, sub.Name)
	}
	// Обе границы окна включительно, неактивные подписки не попадают
	assert.ElementsMatch(t, []string{"OnLowerBound", "Inside", "OnUpperBound"}, names)
}

func TestStorage_DeactivatedSubscriptionLeavesUpcoming(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	userUID := uuid.New().String()
	categoryID := uuid.New().String()
	factory.CreateUser(t, userUID, "test@example.com", "hashedpassword")
	factory.CreateCategory(t, categoryID, "Entertainment")

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	subID := factory.CreateSubscription(t, userUID, categoryID, "Netflix", 15.99, "monthly", from.AddDate(0, 0, 3), true)

	got, err := storage.ListUpcomingPayments(context.Background(), userUID, from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)

	deactivated := *got[0]
	deactivated.IsActive = false
	_, err = storage.UpdateSubscription(context.Background(), deactivated, subID, userUID)
	require.NoError(t, err)

	// Из предстоящих платежей подписка исчезает
	got, err = storage.ListUpcomingPayments(context.Background(), userUID, from, to)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Но сама запись остается читаемой
	sub, err := storage.GetSubscription(context.Background(), subID, userUID)
	require.NoError(t, err)
	assert.False(t, sub.IsActive)
	assert.Equal(t, "Netflix", sub.Name)
}

func TestStorage_UpdateSubscription_ForeignUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	categoryID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "owner@example.com", "hashedpassword")
	factory.CreateUser(t, strangerUID, "stranger@example.com", "hashedpassword")
	factory.CreateCategory(t, categoryID, "Entertainment")

	nextPayment := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	subID := factory.CreateSubscription(t, ownerUID, categoryID, "Netflix", 15.99, "monthly", nextPayment, true)

	original, err := storage.GetSubscription(context.Background(), subID, ownerUID)
	require.NoError(t, err)

	hijacked := *original
	hijacked.Name = "Hijacked"
	_, err = storage.UpdateSubscription(context.Background(), hijacked, subID, strangerUID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubscriptionNotFound))

	// Запись владельца не изменилась
	sub, err := storage.GetSubscription(context.Background(), subID, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", sub.Name)
}

func TestStorage_DeleteSubscription_ForeignUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	ownerUID := uuid.New().String()
	strangerUID := uuid.New().String()
	categoryID := uuid.New().String()
	factory.CreateUser(t, ownerUID, "owner@example.com", "hashedpassword")
	factory.CreateUser(t, strangerUID, "stranger@example.com", "hashedpassword")
	factory.CreateCategory(t, categoryID, "Entertainment")

	nextPayment := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	subID := factory.CreateSubscription(t, ownerUID, categoryID, "Spotify", 9.99, "monthly", nextPayment, true)

	err := storage.DeleteSubscription(context.Background(), subID, strangerUID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubscriptionNotFound))

	// Чужая попытка ничего не удалила
	_, err = storage.GetSubscription(context.Background(), subID, ownerUID)
	require.NoError(t, err)

	// Владелец удаляет успешно, повторное удаление - ErrSubscriptionNotFound
	require.NoError(t, storage.DeleteSubscription(context.Background(), subID, ownerUID))
	err = storage.DeleteSubscription(context.Background(), subID, ownerUID)
	assert.True(t, errors.Is(err, ErrSubscriptionNotFound))
}
