package pricecache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Store(t *testing.T) {
	t.Run("get before and after expiry", func(t *testing.T) {
		now := time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC)
		s := New()
		s.Now = func() time.Time { return now }

		s.Set("k", 42, time.Minute)

		v, ok := s.Get("k")
		require.True(t, ok)
		require.Equal(t, 42, v)

		now = now.Add(2 * time.Minute)
		_, ok = s.Get("k")
		require.False(t, ok)
	})

	t.Run("last writer wins", func(t *testing.T) {
		s := New()
		s.Set("k", "first", time.Minute)
		s.Set("k", "second", time.Minute)

		v, ok := s.Get("k")
		require.True(t, ok)
		require.Equal(t, "second", v)
	})

	t.Run("sweep removes only expired entries", func(t *testing.T) {
		now := time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC)
		s := New()
		s.Now = func() time.Time { return now }

		s.Set("short", 1, time.Second)
		s.Set("long", 2, time.Hour)

		now = now.Add(time.Minute)
		require.Equal(t, 1, s.Sweep())

		_, ok := s.Get("long")
		require.True(t, ok)
	})
}

func Test_Key(t *testing.T) {
	require.Equal(t, "consensus:RELIANCE", Key("consensus", "reliance"))
	require.Equal(t, "history:TCS:1Y", Key("history", "TCS", "1y"))

	// different argument sets must never collide
	require.NotEqual(t, Key("history", "TCS", "1y"), Key("history", "TCS", "5y"))
	require.NotEqual(t, Key("consensus", "TCS"), Key("analysis", "TCS"))
}

func Test_WithCache(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		s := New()
		calls := 0
		produce := func() (string, error) {
			calls++
			return "value", nil
		}

		v, err := WithCache(s, "k", time.Minute, produce)
		require.NoError(t, err)
		require.Equal(t, "value", v)

		v, err = WithCache(s, "k", time.Minute, produce)
		require.NoError(t, err)
		require.Equal(t, "value", v)
		require.Equal(t, 1, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		s := New()
		calls := 0
		produce := func() (int, error) {
			calls++
			if calls == 1 {
				return 0, fmt.Errorf("upstream down")
			}
			return 7, nil
		}

		_, err := WithCache(s, "k", time.Minute, produce)
		require.Error(t, err)

		v, err := WithCache(s, "k", time.Minute, produce)
		require.NoError(t, err)
		require.Equal(t, 7, v)
		require.Equal(t, 2, calls)
	})
}
