package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestStore_GetMissing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := New(db, DefaultPrefix)

	mock.ExpectGet(DefaultPrefix + "familyWeightHistory").RedisNil()
	v, ok, err := store.Get(context.Background(), "familyWeightHistory")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetThenGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := New(db, DefaultPrefix)
	ctx := context.Background()

	mock.ExpectSet(DefaultPrefix+"k", `{"anu":[]}`, 0).SetVal("OK")
	require.NoError(t, store.Set(ctx, "k", `{"anu":[]}`))

	mock.ExpectGet(DefaultPrefix + "k").SetVal(`{"anu":[]}`)
	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"anu":[]}`, v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := New(db, "custom:")
	ctx := context.Background()

	mock.ExpectGet("custom:k").SetErr(errors.New("connection refused"))
	_, ok, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, ok)

	mock.ExpectSet("custom:k", "v", 0).SetErr(errors.New("OOM"))
	assert.Error(t, store.Set(ctx, "k", "v"))

	require.NoError(t, mock.ExpectationsWereMet())
}
