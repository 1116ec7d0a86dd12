package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/naimbob95/ImbaSubVault/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, email, passwordHash string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, password_hash)
		VALUES ($1, $2, $3)`,
		userUID, email, passwordHash)
	require.NoError(t, err)
}

// CreateCategory создает тестовую категорию
func (f *TestDataFactory) CreateCategory(t *testing.T, categoryID, name string) {
	_, err := f.storage.DB.Exec(`INSERT INTO categories (id, name, description, color, icon)
		VALUES ($1, $2, '', '#6366f1', 'tag')`,
		categoryID, name)
	require.NoError(t, err)
}

// CreateSubscription создает тестовую подписку и возвращает её id
func (f *TestDataFactory) CreateSubscription(t *testing.T, userUID, categoryID, name string,
	cost float64, billingCycle string, nextPaymentDate time.Time, isActive bool) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO subscriptions
		(id, user_uid, category_id, name, cost, billing_cycle, start_date, next_payment_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, userUID, categoryID, name, cost, billingCycle,
		nextPaymentDate.AddDate(0, -1, 0), nextPaymentDate, isActive)
	require.NoError(t, err)
	return id
}

// setupTestDatabase поднимает контейнер PostgreSQL и применяет миграции проекта
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
