package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("gemini", 2, time.Minute, nil)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.CanExecute())
	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())
	assert.False(t, cb.CanExecute())

	now = now.Add(time.Minute)
	assert.Equal(t, CircuitStateHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())

	now = now.Add(time.Minute)
	assert.True(t, cb.CanExecute())
	cb.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, cb.State())
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker("openai", 2, time.Minute, nil)
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.Equal(t, CircuitStateClosed, cb.State())

	cb.RecordFailure()
	cb.Reset()
	assert.True(t, cb.CanExecute())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "王者荣...", TruncateString("王者荣耀", 3))
	assert.Equal(t, "abc", TruncateString("abc", 3))
	assert.Equal(t, "zhanji", Normalize("  ZhanJi "))
}
