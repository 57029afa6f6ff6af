package migrator

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/reactiveshop/migrations/shop"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
)

func TestUp_NoMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = Up(context.Background(), db, fstest.MapFS{}, logger.New(&config.Config{LogLevel: "error"}))
	assert.ErrorIs(t, err, goose.ErrNoMigrations)
}

func TestShopMigrations_AreOrdered(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := goose.NewProvider(goose.DialectPostgres, db, shop.MigrationsFS)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.Len(t, sources, 2)
	assert.Equal(t, int64(1), sources[0].Version)
	assert.Equal(t, int64(2), sources[1].Version, "cart tables follow item")
}
