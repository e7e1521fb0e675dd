package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter := newThrottle(1, 2, time.Minute)

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now), "burst spent")
	assert.True(t, limiter.allow("10.0.0.2", now), "buckets are per ip")

	assert.True(t, limiter.allow("10.0.0.1", now.Add(time.Second)), "one token refills per second")
}

func TestThrottle_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter := newThrottle(1, 1, time.Minute)

	limiter.allow("10.0.0.1", now)
	limiter.allow("10.0.0.2", now.Add(50*time.Second))

	limiter.sweep(now.Add(90 * time.Second))

	assert.NotContains(t, limiter.clients, "10.0.0.1")
	assert.Contains(t, limiter.clients, "10.0.0.2")
}
