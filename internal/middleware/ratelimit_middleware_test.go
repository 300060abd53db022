package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidAuthRateLimiter(t *testing.T) {
	t.Run("checking never consumes budget", func(t *testing.T) {
		rl := NewInvalidAuthRateLimiter()

		for i := 0; i < 20; i++ {
			assert.False(t, rl.Blocked("10.0.0.1"))
		}
	})

	t.Run("blocks after five recorded failures", func(t *testing.T) {
		rl := NewInvalidAuthRateLimiter()

		for i := 0; i < 4; i++ {
			rl.Record("10.0.0.2")
		}
		assert.False(t, rl.Blocked("10.0.0.2"))

		rl.Record("10.0.0.2")
		assert.True(t, rl.Blocked("10.0.0.2"))
	})

	t.Run("budgets are per ip", func(t *testing.T) {
		rl := NewInvalidAuthRateLimiter()

		for i := 0; i < 5; i++ {
			rl.Record("10.0.0.3")
		}
		assert.True(t, rl.Blocked("10.0.0.3"))
		assert.False(t, rl.Blocked("10.0.0.4"))
	})
}
