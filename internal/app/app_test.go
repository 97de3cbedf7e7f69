package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Смоук-тест: касса в режиме memory поднимается и аккуратно останавливается
// по отмене контекста.
func TestRunMemoryModeStartsAndStops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := Run(ctx, cfg)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
