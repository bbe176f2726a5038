package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, prefix string) (*miniredis.Miniredis, RedisAdapter) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter(t.Name()+"-"+mr.Addr(), prefix, &Options{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)
	return mr, adapter
}

func TestRedisAdapter_KeyValue(t *testing.T) {
	mr, adapter := setupTestRedis(t, "test:")
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("test:k"), "keys carry the prefix")

	got, err := adapter.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	n, err := adapter.Exist(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, adapter.Del(ctx, "k"))
	_, err = adapter.Get(ctx, "k")
	assert.ErrorIs(t, err, NilError)
}

func TestRedisAdapter_Hash(t *testing.T) {
	_, adapter := setupTestRedis(t, "")
	ctx := context.Background()

	require.NoError(t, adapter.HSet(ctx, "h", map[string]interface{}{"a": "1", "b": "2"}))
	all, err := adapter.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)
}

func TestRedisAdapter_TxPipelined(t *testing.T) {
	_, adapter := setupTestRedis(t, "p:")
	ctx := context.Background()

	_, err := adapter.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, adapter.Prefix()+"x", "1", 0)
		p.Set(ctx, adapter.Prefix()+"y", "2", 0)
		return nil
	})
	require.NoError(t, err)

	x, err := adapter.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "1", string(x))
}

func TestNewRedisAdapter_Registry(t *testing.T) {
	mr := miniredis.RunT(t)
	name := t.Name()

	first, err := NewRedisAdapter(name, "", &Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)
	second, err := NewRedisAdapter(name, "", &Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, GetRedis(name))
	require.NoError(t, first.Ping(context.Background()))

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewRedisAdapter(t.Name(), "", &Options{Addrs: []string{"127.0.0.1:1"}})
		assert.Error(t, err)
	})
}
