package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("server.host", "127.0.0.1"))
	require.NoError(t, store.Set("server.host", "0.0.0.0"))

	val, ok := store.Get("server.host")
	assert.True(t, ok)
	assert.Equal(t, "0.0.0.0", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"server.port":              int64(9100),
		"auth.open_browser":        true,
		"calendar.ids":             []any{"primary", 7, "team@group.calendar.google.com"},
		"gmail.labels":             []string{"INBOX", "IMPORTANT"},
		"upstream.timeout":         "45s",
		"auth.callback_port_float": 8085.0,
	})

	assert.Equal(t, 9100, store.GetInt("server.port"))
	assert.Equal(t, 8085, store.GetInt("auth.callback_port_float"))
	assert.True(t, store.GetBool("auth.open_browser"))
	assert.Equal(t, []string{"primary", "team@group.calendar.google.com"}, store.GetStringSlice("calendar.ids"))
	assert.Equal(t, []string{"INBOX", "IMPORTANT"}, store.GetStringSlice("gmail.labels"))
	assert.Equal(t, "45s", store.GetString("upstream.timeout"))

	// Wrong types and missing keys yield zero values.
	assert.Empty(t, store.GetString("server.port"))
	assert.Zero(t, store.GetInt("upstream.timeout"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("server.port"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("server.port", n)
			_ = store.GetInt("server.port")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("server.port")
	assert.True(t, ok)
}
