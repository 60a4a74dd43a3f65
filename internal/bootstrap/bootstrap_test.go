package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/sse"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2024-01-01_00-00-00.log",
		"session_2024-01-02_00-00-00.log",
		"session_2024-01-03_00-00-00.log",
		"session_2024-01-04_00-00-00.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, EventDeadLetterFileName), nil, 0o600))

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, []string{names[2], names[3], EventDeadLetterFileName}, got)
}

func TestInitializeRepositories(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		ctx := context.Background()
		cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "gacha.db")}

		repos, err := InitializeRepositories(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(repos.Close)

		require.NoError(t, repos.Pinger.Ping(ctx))
		n, err := repos.Catalog.CountItems(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := InitializeRepositories(context.Background(), &config.Config{DBDriver: "mysql"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
	})
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "gacha.db")}
	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(repos.Close)
	svc := catalog.NewService(repos.Catalog, nil)

	cfg.SeedDefaultItems = false
	require.NoError(t, SeedCatalog(ctx, cfg, svc))
	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	cfg.SeedDefaultItems = true
	require.NoError(t, SeedCatalog(ctx, cfg, svc))
	require.NoError(t, SeedCatalog(ctx, cfg, svc))
	n, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultItems), n)
}

func TestRegisterEventHandlers_RelaysToHub(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Hub: hub})
	client := hub.Register([]string{sse.EventTypeCatalogChanged})
	require.NotNil(t, client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), event.NewCatalogChangedEvent(catalog.ActionAdded, "fork")))

	select {
	case evt := <-client.EventChannel:
		assert.Equal(t, sse.EventTypeCatalogChanged, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("no event relayed to hub")
	}
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{LogDir: filepath.Join(t.TempDir(), "logs")}
	bus, rp, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	t.Cleanup(func() { _ = rp.Shutdown(context.Background()) })

	_, err = os.Stat(filepath.Join(cfg.LogDir, EventDeadLetterFileName))
	assert.NoError(t, err)
}
