package utils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakeload/lakeload/utils"
)

func TestTryWithFixedBackoffSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := utils.TryWithFixedBackoff(3, 0, func() error {
		calls++
		return nil
	}, func(attempt int, err error) {
		t.Fatalf("onError called on success: attempt %d, %v", attempt, err)
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestTryWithFixedBackoffRecovers(t *testing.T) {
	calls := 0
	var failures []int
	err := utils.TryWithFixedBackoff(3, 0, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, func(attempt int, err error) {
		failures = append(failures, attempt)
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []int{1, 2}, failures)
}

func TestTryWithFixedBackoffExhaustsBudget(t *testing.T) {
	calls := 0
	last := errors.New("still broken")
	err := utils.TryWithFixedBackoff(3, 0, func() error {
		calls++
		return last
	}, func(int, error) {})
	require.Equal(t, last, err)
	require.Equal(t, 3, calls)
}

func TestTryWithFixedBackoffMinimumOneAttempt(t *testing.T) {
	calls := 0
	err := utils.TryWithFixedBackoff(0, 0, func() error {
		calls++
		return errors.New("nope")
	}, func(int, error) {})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestAwaitEnoughMemoryGenerousCeiling(t *testing.T) {
	// a ceiling far above any test heap must never block
	utils.AwaitEnoughMemory("test", 1<<60)
}

func TestAwaitEnoughMemoryZeroCeilingDisabled(t *testing.T) {
	utils.AwaitEnoughMemory("test", 0)
}

func TestContains(t *testing.T) {
	slice := []string{"vin", "make", "model"}
	require.True(t, utils.Contains(slice, "make"))
	require.False(t, utils.Contains(slice, "price"))
	require.False(t, utils.Contains(nil, "vin"))
}
