package migrations_test

import (
	"bytes"
	"context"
	"testing"

	"paquexpress/internal/adapters/out/postgres/migrations"
	"paquexpress/internal/adapters/out/postgres/pgtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_UpDownStatus(t *testing.T) {
	ctx := context.Background()
	database, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Terminate(context.Background()) })

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)

	version, err := migrations.Version(ctx, sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	// Up is idempotent.
	require.NoError(t, migrations.Up(ctx, sqlDB))

	var out bytes.Buffer
	require.NoError(t, migrations.Status(ctx, sqlDB, &out))
	assert.Contains(t, out.String(), "00001_create_agents.sql")
	assert.Contains(t, out.String(), "00003_create_delivery_records.sql")
	assert.NotContains(t, out.String(), "pending")

	require.NoError(t, migrations.Down(ctx, sqlDB))
	version, err = migrations.Version(ctx, sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	out.Reset()
	require.NoError(t, migrations.Status(ctx, sqlDB, &out))
	assert.Contains(t, out.String(), "pending")

	require.NoError(t, migrations.Reset(ctx, sqlDB))
	version, err = migrations.Version(ctx, sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestMigrations_Constraints(t *testing.T) {
	ctx := context.Background()
	database, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Terminate(context.Background()) })

	require.NoError(t, database.InsertAgent(7, "Ana", "a@x.com", "hash"))
	require.Error(t, database.InsertAgent(8, "Other", "a@x.com", "hash"), "email is unique")

	require.NoError(t, database.InsertPackage(42, "PQX-0042", "Av. Reforma 1", "ASSIGNED", 7))
	require.Error(t, database.InsertPackage(43, "PQX-0042", "Calle 5", "ASSIGNED", 7), "code is unique")
	require.Error(t, database.InsertPackage(44, "PQX-0044", "Calle 5", "LOST", 7), "state is checked")
	require.Error(t, database.InsertPackage(45, "PQX-0045", "Calle 5", "ASSIGNED", 99), "agent must exist")
}
