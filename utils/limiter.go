package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Verification mail is fire-and-forget, so the only abuse control is how
// often a given address can ask for one: once per 60 seconds, 10 per hour.
func CanSendVerification(rdb *redis.Client, key string) (bool, string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("verify_minute_%s", key)
	hourKey := fmt.Sprintf("verify_hour_%s", key)
	if rdb.Exists(ctx, minuteKey).Val() > 0 {
		return false, "verification email can be requested once per 60 seconds"
	}
	cnt, _ := rdb.Get(ctx, hourKey).Int()
	if cnt >= 10 {
		return false, "verification email can be requested at most 10 times per hour"
	}
	return true, ""
}

func MarkVerificationSent(rdb *redis.Client, key string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("verify_minute_%s", key)
	hourKey := fmt.Sprintf("verify_hour_%s", key)
	rdb.Set(ctx, minuteKey, 1, 60*time.Second)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}
