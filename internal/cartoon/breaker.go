// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cartoon

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/happydog/core/internal/platform/constants"
)

/*
CircuitBreaker guards the third-party cartoon-generation call (spec §7):
it counts generation failures until the next success, in a fixed window
of [constants.CircuitBreakerWindow] that starts at the first failure of
a run (the counter's expiry is set only then), and, once the count reaches [constants.CircuitBreakerFailureThreshold], refuses
further generation attempts for [constants.CircuitBreakerOpenDuration]
without placing the call at all.

It holds no in-process state; the counter and the open flag both live in
Redis (the teacher's go-redis client), so the breaker's state is shared
across every process running this core. A nil Redis client fails open
(Allow always true) rather than block cartoon generation entirely when
the cache is unreachable.
*/
type CircuitBreaker struct {
	redis *redis.Client
}

// NewCircuitBreaker constructs a [CircuitBreaker] backed by redisClient.
func NewCircuitBreaker(redisClient *redis.Client) *CircuitBreaker {
	return &CircuitBreaker{redis: redisClient}
}

// Allow reports whether the generation call may proceed.
func (b *CircuitBreaker) Allow(ctx context.Context) bool {
	if b.redis == nil {
		return true
	}
	n, err := b.redis.Exists(ctx, constants.RedisPrefixBreakerOpenUntil).Result()
	if err != nil {
		return true
	}
	return n == 0
}

// RecordFailure increments the consecutive-failure counter and opens the
// breaker once it crosses the threshold.
func (b *CircuitBreaker) RecordFailure(ctx context.Context) {
	if b.redis == nil {
		return
	}

	count, err := b.redis.Incr(ctx, constants.RedisPrefixBreakerFailures).Result()
	if err != nil {
		return
	}
	if count == 1 {
		b.redis.Expire(ctx, constants.RedisPrefixBreakerFailures, constants.CircuitBreakerWindow)
	}
	if count >= constants.CircuitBreakerFailureThreshold {
		b.redis.Set(ctx, constants.RedisPrefixBreakerOpenUntil, 1, constants.CircuitBreakerOpenDuration)
	}
}

// RecordSuccess clears the consecutive-failure counter.
func (b *CircuitBreaker) RecordSuccess(ctx context.Context) {
	if b.redis == nil {
		return
	}
	b.redis.Del(ctx, constants.RedisPrefixBreakerFailures)
}
