//go:build e2e

package pgstore_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/docstore/pgstore"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	coll         = "notifications"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	dsn := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", testUser, testPassword, host, port.Port())
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Cmd:        []string{"postgres", "-c", "fsync=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", dsn).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn(host, port))
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newStore(t *testing.T) (*pgstore.Store, *pgxpool.Pool) {
	t.Helper()
	pool := startPostgres(t)
	store := pgstore.New(pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, store.EnsureSchema(context.Background()))
	t.Cleanup(store.Close)
	return store, pool
}

func TestStore(t *testing.T) {
	store, pool := newStore(t)
	ctx := context.Background()

	reset := func(t *testing.T) {
		_, err := pool.Exec(ctx, "TRUNCATE documents")
		require.NoError(t, err)
	}

	t.Run("set get update delete", func(t *testing.T) {
		reset(t)
		created, err := store.Set(ctx, coll, "n1", docstore.Fields{"title": "hello", "rank": 1})
		require.NoError(t, err)
		assert.Equal(t, "hello", created.Data.String("title"))

		updated, err := store.Update(ctx, coll, "n1", docstore.Fields{"rank": 2, "title": nil})
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Data.Int("rank"))
		_, hasTitle := updated.Data["title"]
		assert.False(t, hasTitle)
		assert.False(t, updated.UpdateTime.Before(created.UpdateTime))

		_, err = store.Update(ctx, coll, "missing", docstore.Fields{"rank": 1})
		assert.True(t, errors.Is(err, docstore.ErrNotFound))

		require.NoError(t, store.Delete(ctx, coll, "n1"))
		require.NoError(t, store.Delete(ctx, coll, "n1"))
		_, err = store.Get(ctx, coll, "n1")
		assert.True(t, errors.Is(err, docstore.ErrNotFound))
	})

	t.Run("nulls are dropped and patches merge top level only", func(t *testing.T) {
		reset(t)
		created, err := store.Set(ctx, coll, "n1", docstore.Fields{
			"title": "t",
			"rank":  1,
			"meta":  map[string]any{"site": "s1", "crane": nil},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"site": "s1"}, created.Data["meta"])

		_, err = pool.Exec(ctx, `UPDATE documents SET data = jsonb_set(data, '{legacy}', '{"kept": null}') WHERE id = 'n1'`)
		require.NoError(t, err)

		updated, err := store.Update(ctx, coll, "n1", docstore.Fields{
			"meta":  map[string]any{"site": "s2", "note": nil},
			"title": nil,
		})
		require.NoError(t, err)
		_, hasTitle := updated.Data["title"]
		assert.False(t, hasTitle)
		assert.Equal(t, int64(1), updated.Data.Int("rank"))
		assert.Equal(t, map[string]any{"site": "s2"}, updated.Data["meta"])
		assert.Equal(t, map[string]any{"kept": nil}, updated.Data["legacy"], "untouched nested fields survive an update")
	})

	t.Run("query filters and keyset pagination", func(t *testing.T) {
		reset(t)
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		for i, id := range []string{"a", "b", "c", "d"} {
			_, err := store.Set(ctx, coll, id, docstore.Fields{
				"userId":    "u1",
				"rank":      i,
				"createdAt": base.Add(time.Duration(i) * time.Minute),
				"tags":      []string{"t" + id},
			})
			require.NoError(t, err)
		}

		docs, err := store.Query(ctx, docstore.Query{
			Collection: coll,
			Filters:    []docstore.Filter{docstore.Where("createdAt", docstore.OpGreaterOrEqual, base.Add(time.Minute))},
			OrderBy:    &docstore.Order{Field: "createdAt", Desc: true},
			Limit:      2,
		})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "d", docs[0].ID)
		assert.Equal(t, "c", docs[1].ID)

		next, err := store.Query(ctx, docstore.Query{
			Collection: coll,
			OrderBy:    &docstore.Order{Field: "createdAt", Desc: true},
			StartAfter: docs[1].ID,
		})
		require.NoError(t, err)
		require.Len(t, next, 2)
		assert.Equal(t, "b", next[0].ID)

		in, err := store.Count(ctx, docstore.Query{Collection: coll, Filters: []docstore.Filter{docstore.Where("rank", docstore.OpIn, []int{0, 3})}})
		require.NoError(t, err)
		assert.Equal(t, 2, in)

		contains, err := store.Count(ctx, docstore.Query{Collection: coll, Filters: []docstore.Filter{docstore.Where("tags", docstore.OpArrayContains, "tb")}})
		require.NoError(t, err)
		assert.Equal(t, 1, contains)

		_, err = store.Query(ctx, docstore.Query{Collection: coll, StartAfter: "zzz"})
		assert.True(t, errors.Is(err, docstore.ErrInvalidCursor))
	})

	t.Run("commit rolls back on failure", func(t *testing.T) {
		reset(t)
		_, err := store.Commit(ctx, []docstore.Write{
			{Kind: docstore.WriteSet, Collection: coll, ID: "a", Data: docstore.Fields{"rank": 1}},
			{Kind: docstore.WriteUpdate, Collection: coll, ID: "ghost", Data: docstore.Fields{"rank": 2}},
		})
		require.Error(t, err)

		n, err := store.Count(ctx, docstore.Query{Collection: coll})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("subscribe emits snapshots on change", func(t *testing.T) {
		reset(t)
		snapshots := make(chan []docstore.Document, 8)
		unsubscribe, err := store.Subscribe(ctx,
			docstore.Query{Collection: coll},
			func(docs []docstore.Document) { snapshots <- docs },
			func(err error) { t.Errorf("unexpected error: %v", err) },
		)
		require.NoError(t, err)
		defer unsubscribe()

		first := receive(t, snapshots)
		assert.Empty(t, first)

		_, err = store.Set(ctx, coll, "n1", docstore.Fields{"title": "hi"})
		require.NoError(t, err)

		second := receive(t, snapshots)
		require.Len(t, second, 1)
		assert.Equal(t, "n1", second[0].ID)
	})
}

func receive(t *testing.T, ch <-chan []docstore.Document) []docstore.Document {
	t.Helper()
	select {
	case docs := <-ch:
		return docs
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
