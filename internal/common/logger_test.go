package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name    string
		level   slog.Level
		format  string
		enabled slog.Level
		muted   slog.Level
	}{
		{
			name:    "json at info",
			level:   slog.LevelInfo,
			format:  "json",
			enabled: slog.LevelInfo,
			muted:   slog.LevelDebug,
		},
		{
			name:    "console at debug",
			level:   slog.LevelDebug,
			format:  "console",
			enabled: slog.LevelDebug,
			muted:   slog.LevelDebug - 4,
		},
		{
			name:    "unknown format falls back to text",
			level:   slog.LevelWarn,
			format:  "bogus",
			enabled: slog.LevelError,
			muted:   slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, SetupLogger(tt.level, tt.format))

			ctx := context.Background()
			assert.True(t, slog.Default().Enabled(ctx, tt.enabled))
			assert.False(t, slog.Default().Enabled(ctx, tt.muted))
		})
	}
}
