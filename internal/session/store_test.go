package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winhouse-quote/internal/models"
	"winhouse-quote/internal/wizard"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_CreateLoadSave(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, "wizard:", time.Hour, WithIDGenerator(func() string { return "abc" }))
	ctx := context.Background()

	id, state, err := store.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Equal(t, wizard.InitialState(), state)
	assert.True(t, mr.Exists("wizard:abc"))
	assert.Equal(t, time.Hour, mr.TTL("wizard:abc"))

	w := wizard.Restore(state)
	w.NextStep()
	w.SetIndustry("ecommerce")
	w.AddModule(models.Module{ID: "shopping-cart", BasePrice: 12_000_000, EstimatedDays: 7})
	require.NoError(t, store.Save(ctx, id, w.State()))

	loaded, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, w.State().CurrentStep, loaded.CurrentStep)
	assert.Equal(t, w.Calculation(), wizard.Restore(loaded).Calculation())
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, "wizard:", time.Minute)
	ctx := context.Background()

	id, _, err := store.Create(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_LoadCorrupt(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, "wizard:", 0)
	require.NoError(t, mr.Set("wizard:bad", `{"version":1,"state":{"currentStep":"checkout"}}`))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, wizard.ErrCorruptState))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_Delete(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, "s:", 0, WithIDGenerator(func() string { return "x" }))
	ctx := context.Background()

	_, _, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "x"))
	assert.False(t, mr.Exists("s:x"))
}

func TestRedisStore_BackendErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet("wizard:s1").SetErr(errors.New("connection refused"))

		_, err := NewRedisStore(client, "wizard:", time.Hour).Load(ctx, "s1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("missing key", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet("wizard:s1").RedisNil()

		_, err := NewRedisStore(client, "wizard:", time.Hour).Load(ctx, "s1")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("save failure", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		data, err := wizard.Marshal(wizard.InitialState())
		require.NoError(t, err)
		redisMock.ExpectSet("wizard:s1", data, time.Hour).SetErr(errors.New("OOM"))

		err = NewRedisStore(client, "wizard:", time.Hour).Save(ctx, "s1", wizard.InitialState())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OOM")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
