package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockRunnable struct {
	runCount atomic.Int32
	runErr   error
}

func (m *mockRunnable) Run(ctx context.Context) error {
	m.runCount.Add(1)
	return m.runErr
}

func TestNewCronTrigger(t *testing.T) {
	runnable := &mockRunnable{}

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{
			name:    "valid spec - every five minutes",
			spec:    "*/5 * * * *",
			wantErr: false,
		},
		{
			name:    "valid spec - descriptor",
			spec:    "@hourly",
			wantErr: false,
		},
		{
			name:    "valid spec - every interval",
			spec:    "@every 30s",
			wantErr: false,
		},
		{
			name:    "invalid spec - empty",
			spec:    "",
			wantErr: true,
		},
		{
			name:    "invalid spec - wrong format",
			spec:    "not a cron spec",
			wantErr: true,
		},
		{
			name:    "invalid spec - too few fields",
			spec:    "0 2 *",
			wantErr: true,
		},
		{
			name:    "invalid spec - invalid value",
			spec:    "60 2 * * *",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, err := NewCronTrigger(tt.spec, runnable, slog.Default())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCronSpec)
				assert.Nil(t, trigger)
				return
			}
			require.NoError(t, err)
			assert.True(t, trigger.NextRun().After(time.Now()))
		})
	}
}

func TestCronTrigger_RunsOnSchedule(t *testing.T) {
	runnable := &mockRunnable{runErr: errors.New("remote write unavailable")}
	trigger, err := NewCronTrigger("@every 1s", runnable, slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)

	assert.Eventually(t, func() bool {
		return runnable.runCount.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	trigger.Wait()
}

func TestCronTrigger_StopsOnCancel(t *testing.T) {
	runnable := &mockRunnable{}
	trigger, err := NewCronTrigger("@hourly", runnable, slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)
	cancel()
	trigger.Wait()

	assert.Equal(t, int32(0), runnable.runCount.Load())
}

func TestRunnableFunc(t *testing.T) {
	called := false
	var r Runnable = RunnableFunc(func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, r.Run(context.Background()))
	assert.True(t, called)
}
