package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileKV_MissOnAbsentKey(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	_, err = kv.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMiss)
}

func TestFileKV_SetGetDel(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "k", `["a","b"]`))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `["a","b"]`, got)

	require.NoError(t, kv.Del(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestFileKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k1", "v1"))
	require.NoError(t, kv.Set(ctx, "k2", "v2"))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	got, err = reopened.Get(ctx, "k2")
	require.NoError(t, err)
	require.Equal(t, "v2", got)
}
