package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRequestPerMinuteLimit(t *testing.T) {
	rl := NewRateLimiter(3, 0, 0, true)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest(), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.AllowRequest())

	rl.Reset()
	assert.True(t, rl.AllowRequest())
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, 1, 1, false)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.AllowRequest())
	}
	assert.False(t, rl.GetStats().Enabled)
}

func TestRejectedRequestNotRecorded(t *testing.T) {
	rl := NewRateLimiter(2, 0, 0, true)

	rl.AllowRequest()
	rl.AllowRequest()
	rl.AllowRequest() // rejected

	stats := rl.GetStats()
	assert.Equal(t, 2, stats.RequestsLastMinute)
	assert.Equal(t, 0, stats.RemainingThisMinute)
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(10, 100, 1000, true)
	rl.AllowRequest()

	stats := rl.GetStats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, 1, stats.RequestsLastMinute)
	assert.Equal(t, 1, stats.RequestsLastHour)
	assert.Equal(t, 1, stats.RequestsLastDay)
	assert.Equal(t, 9, stats.RemainingThisMinute)
	assert.Equal(t, 99, stats.RemainingThisHour)
	assert.Equal(t, 999, stats.RemainingThisDay)
}
