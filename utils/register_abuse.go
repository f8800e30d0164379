package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsblog/newsblog/config"
)

// Registration abuse guards backed by Redis. Every guard fails open: when
// Redis is unreachable, registration proceeds normally.

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
func RegistrationCooldownTry(ip string) bool {
	sec := config.Get().RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	rc := GetRedis()
	if rc == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := rc.SetNX(ctx, "reg:cooldown:"+ip, "1", time.Duration(sec)*time.Second).Result()
	if err != nil {
		return true
	}
	return ok
}

// RegistrationDailyLimitCheck allows up to N registrations per day per IP.
func RegistrationDailyLimitCheck(ip string) bool {
	limit := config.Get().RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	rc := GetRedis()
	if rc == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := "reg:succday:" + ip + ":" + time.Now().Format("20060102")
	n, err := rc.Get(ctx, key).Int()
	if err == redis.Nil {
		n = 0
	} else if err != nil {
		return true
	}
	return n < limit
}

// RegistrationDailyIncrement records one successful registration for the IP.
func RegistrationDailyIncrement(ip string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := "reg:succday:" + ip + ":" + time.Now().Format("20060102")
	if n, err := rc.Incr(ctx, key).Result(); err == nil && n == 1 {
		_ = rc.Expire(ctx, key, 25*time.Hour).Err()
	}
}
