//go:build integration

package store_test

import (
	"testing"

	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestStore_Postgres(t *testing.T) {
	ctx := t.Context()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.Open(ctx, "pgx", connStr, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.EnsureTable(ctx))

	inserted, err := s.SaveEvents(ctx, events)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = s.SaveEvents(ctx, events)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := s.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []rachio.DeviceEvent{events[1], events[0]}, got)
}
