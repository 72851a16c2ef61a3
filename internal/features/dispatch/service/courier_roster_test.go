package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/features/dispatch/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCourierRoster_EnsureLoadedOnce(t *testing.T) {
	store := new(MockCourierStore)
	store.On("ListCouriers", mock.Anything).
		After(20*time.Millisecond).
		Return([]domain.Courier{{ID: 7, Name: "Carlos", Active: true}}, nil).
		Once()

	roster := NewCourierRoster(store, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, roster.EnsureLoaded(context.Background()))
		}()
	}
	wg.Wait()

	require.NoError(t, roster.EnsureLoaded(context.Background()))
	store.AssertNumberOfCalls(t, "ListCouriers", 1)
	assert.True(t, roster.Loaded())

	c, ok := roster.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Carlos", c.Name)
}

func TestCourierRoster_LoadFailureRetries(t *testing.T) {
	ctx := context.Background()
	store := new(MockCourierStore)
	store.On("ListCouriers", ctx).Return(nil, errors.New("timeout")).Once()
	store.On("ListCouriers", ctx).Return([]domain.Courier{}, nil).Once()

	roster := NewCourierRoster(store, nil, nil)
	assert.Error(t, roster.EnsureLoaded(ctx))
	assert.False(t, roster.Loaded())
	assert.NoError(t, roster.EnsureLoaded(ctx))
	assert.True(t, roster.Loaded())
}

// TestCourierRoster_ToggleRollback verifies that a failed toggle reverts the optimistic flip.
func TestCourierRoster_ToggleRollback(t *testing.T) {
	ctx := context.Background()
	store := new(MockCourierStore)
	store.On("ListCouriers", ctx).Return([]domain.Courier{{ID: 7, Name: "Carlos", Active: true}}, nil)

	roster := NewCourierRoster(store, metrics.New(), nil)
	require.NoError(t, roster.EnsureLoaded(ctx))

	// The flag flips before the store answers.
	release := make(chan time.Time)
	store.On("SetCourierActive", ctx, int64(7), false).
		WaitUntil(release).
		Return(errors.New("permission denied")).
		Once()

	done := make(chan error, 1)
	go func() {
		_, err := roster.Toggle(ctx, 7)
		done <- err
	}()

	assert.Eventually(t, func() bool {
		c, _ := roster.Get(7)
		return !c.Active
	}, time.Second, time.Millisecond)

	close(release)
	assert.EqualError(t, <-done, "permission denied")

	c, _ := roster.Get(7)
	assert.True(t, c.Active)
}

func TestCourierRoster_Toggle(t *testing.T) {
	ctx := context.Background()
	store := new(MockCourierStore)
	store.On("ListCouriers", ctx).Return([]domain.Courier{{ID: 7, Name: "Carlos", Active: false}}, nil)
	store.On("SetCourierActive", ctx, int64(7), true).Return(nil)

	roster := NewCourierRoster(store, nil, nil)
	require.NoError(t, roster.EnsureLoaded(ctx))

	c, err := roster.Toggle(ctx, 7)
	require.NoError(t, err)
	assert.True(t, c.Active)

	_, err = roster.Toggle(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrCourierNotFound)
	assert.Len(t, roster.List("car"), 1)
}
