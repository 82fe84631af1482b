//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eventsapi/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("eventsapi"),
		tcpostgres.WithUsername("eventsapi"),
		tcpostgres.WithPassword("eventsapi"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestIntegration_EventLifecycle(t *testing.T) {
	dsn := startPostgres(t)
	require.NoError(t, MigrateUp(dsn))

	ctx := context.Background()
	db, err := Open(ctx, dsn, PoolConfig{MaxOpenConns: 4})
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	accounts := NewAccountRepository(db)
	manager := domain.NewAccount("manager@example.com", []domain.AccountRole{domain.RoleUser}, now, now)
	manager.ID = "6f1c2d8e-3a5b-4c7d-9e0f-1a2b3c4d5e6f"
	manager.PasswordHash = "hash"
	manager.Salt = "salt"
	require.NoError(t, accounts.Create(ctx, manager))
	require.ErrorIs(t, accounts.Create(ctx, manager), domain.ErrDuplicateEmail)

	loaded, err := accounts.GetByEmail(ctx, "manager@example.com")
	require.NoError(t, err)
	assert.Equal(t, []domain.AccountRole{domain.RoleUser}, loaded.Roles)

	events := NewEventRepository(db)
	for i := 0; i < 30; i++ {
		e := domain.NewEvent(domain.EventPayload{
			Name:                    fmt.Sprintf("event %02d", i),
			BeginEnrollmentDateTime: domain.NewLocalDateTime(2018, 11, 23, 14, 21, 0),
			CloseEnrollmentDateTime: domain.NewLocalDateTime(2018, 11, 24, 14, 21, 0),
			BeginEventDateTime:      domain.NewLocalDateTime(2018, 11, 25, 14, 21, 0),
			EndEventDateTime:        domain.NewLocalDateTime(2018, 11, 26, 14, 21, 0),
			Location:                "D2 startup factory",
			BasePrice:               100,
			MaxPrice:                200,
		}, loaded, now, now)
		e.Update()
		require.NoError(t, events.Create(ctx, e))
		require.NotZero(t, e.ID)
	}

	total, err := events.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	page, err := events.List(ctx, domain.Pageable{Page: 1, Size: 10, Sort: []domain.SortOrder{
		{Property: "name", Direction: domain.SortDesc},
	}})
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "event 19", page[0].Name)
	assert.Equal(t, "event 10", page[9].Name)

	got, err := events.GetByID(ctx, page[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2018-11-23T14:21:00", got.BeginEnrollmentDateTime.String())
	assert.True(t, got.ManagedBy(loaded))

	got.Name = "renamed"
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, events.Update(ctx, got))
	again, err := events.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Name)

	_, err = events.GetByID(ctx, 100000)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
