package utils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func limiterClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestCanSendVerificationMinuteWindow(t *testing.T) {
	rdb, mr := limiterClient(t)
	key := "verify:email:jane@x.com"

	ok, _ := CanSendVerification(rdb, key)
	assert.True(t, ok)

	MarkVerificationSent(rdb, key)

	ok, msg := CanSendVerification(rdb, key)
	assert.False(t, ok)
	assert.Contains(t, msg, "60 seconds")

	// a different address is unaffected
	ok, _ = CanSendVerification(rdb, "verify:email:john@x.com")
	assert.True(t, ok)

	mr.FastForward(61 * time.Second)
	ok, _ = CanSendVerification(rdb, key)
	assert.True(t, ok)
}

func TestCanSendVerificationHourWindow(t *testing.T) {
	rdb, mr := limiterClient(t)
	key := "verify:email:jane@x.com"

	for i := 0; i < 10; i++ {
		ok, _ := CanSendVerification(rdb, key)
		assert.True(t, ok, i)
		MarkVerificationSent(rdb, key)
		mr.FastForward(61 * time.Second)
	}

	// the minute key has expired but the hourly count is exhausted
	ok, msg := CanSendVerification(rdb, key)
	assert.False(t, ok)
	assert.Contains(t, msg, "10 times per hour")

	mr.FastForward(time.Hour)
	ok, _ = CanSendVerification(rdb, key)
	assert.True(t, ok)
}
