package httpx

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_Success(t *testing.T) {
	breaker := NewCircuitBreaker("sheets", time.Second, 3, nil)

	calls := 0
	err := breaker.Execute(func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_WrapsErrors(t *testing.T) {
	breaker := NewCircuitBreaker("sheets", time.Second, 3, nil)
	boom := errors.New("boom")

	err := breaker.Execute(func() error { return boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "breaker (sheets): boom", err.Error())
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var mu sync.Mutex
	var transitions []string
	breaker := NewCircuitBreaker("sheets", 50*time.Millisecond, 2, func(name, from, to string) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, from+"->"+to)
	})
	fail := func() error { return errors.New("upstream 500") }

	_ = breaker.Execute(fail)
	_ = breaker.Execute(fail)
	assert.Equal(t, "open", breaker.State())

	calls := 0
	err := breaker.Execute(func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Zero(t, calls)

	time.Sleep(80 * time.Millisecond)
	require.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, "closed", breaker.State())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_ZeroMaxFailuresTripsOnFirst(t *testing.T) {
	breaker := NewCircuitBreaker("sheets", time.Minute, 0, nil)
	_ = breaker.Execute(func() error { return errors.New("x") })
	assert.Equal(t, "open", breaker.State())
}
