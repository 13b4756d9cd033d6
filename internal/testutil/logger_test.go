package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTestLogger_Level(t *testing.T) {
	ctx := context.Background()

	logger := NewTestLogger(t)
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))

	logger = NewTestLogger(t, WithLevel(slog.LevelWarn))
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}
