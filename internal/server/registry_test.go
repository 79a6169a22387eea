package server

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/abhisek/flashquiz/internal/session"
)

func TestRegistrySweep(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	reg := NewRegistry(nil).WithClock(clk)

	stale := reg.Create()
	clk.Step(20 * time.Minute)
	fresh := reg.Create()
	used := reg.Create()
	clk.Step(15 * time.Minute)
	_, err := reg.get(used)
	require.NoError(t, err)
	clk.Step(time.Minute)

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 2, reg.Len())

	_, err = reg.get(stale)
	assert.ErrorIs(t, err, session.ErrNoSession)

	// fresh was last touched at 20m, used at 35m
	clk.Step(15 * time.Minute)
	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	_, err = reg.get(fresh)
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = reg.get(used)
	assert.NoError(t, err)
}

func TestRegistryRunSweeper(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	reg := NewRegistry(nil).WithClock(clk)
	reg.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.RunSweeper(ctx, time.Minute, slog.New(slog.DiscardHandler)) }()

	require.Eventually(t, clk.HasWaiters, time.Second, time.Millisecond)
	clk.Step(2 * time.Minute)
	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
