package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("dev environment enables debug logging", func(t *testing.T) {
		t.Setenv("STOCKSENSE_ENV", "dev")
		log := New()
		require.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("production environment suppresses debug", func(t *testing.T) {
		t.Setenv("STOCKSENSE_ENV", "production")
		log := New()
		require.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
		require.True(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("env comparison is case-insensitive", func(t *testing.T) {
		t.Setenv("STOCKSENSE_ENV", "DEV")
		log := New()
		require.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
	})
}
