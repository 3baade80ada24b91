// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Biometric Admission: distance thresholds for duplicate/outlier classification.
  - Job Orchestrator: worker-pool sizing and circuit-breaker tuning.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "happydog-core"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Scheduled Jobs

const (
	// RevokedTokenSweepSchedule runs the revoked_tokens GC sweep hourly.
	RevokedTokenSweepSchedule = "@hourly"

	// VectorIndexSelfCheckSchedule compares the VectorIndex's entry count
	// against the verified-Pet count every 15 minutes.
	VectorIndexSelfCheckSchedule = "*/15 * * * *"
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// SignedURLRateLimitRPS bounds how often a single caller may mint
	// signed upload URLs (§4.3), scaled down from the global HTTP rate.
	SignedURLRateLimitRPS = 5.0

	// SignedURLRateLimitBurst allows a short burst of multi-file uploads.
	SignedURLRateLimitBurst = 10
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "happydog.app"

	// ContextKeyUser is the key used to store user claims in the request context.
	ContextKeyUser = "user_claims"
)

// # Biometric Admission (C7)

const (
	// DuplicateThreshold is the L2 distance at or below which a nose-print
	// is classified as a duplicate of an already-verified Pet (§4.7).
	DuplicateThreshold = 0.7

	// OutlierThreshold is the L2 distance at or above which a nose-print
	// is classified as an invalid/unrelated image (§4.7).
	OutlierThreshold = 1.2

	// EmbeddingDimension is the fixed dimensionality D of every stored
	// embedding (§4.4).
	EmbeddingDimension = 512
)

// # Job Orchestrator (C8)

const (
	// DefaultWorkerPoolSize caps concurrent cartoon-generation pipelines
	// against the third-party image-generation API (§5).
	DefaultWorkerPoolSize = 4

	// DefaultSubmissionQueueDepth is the FIFO queue depth beyond the pool's
	// concurrency cap before submissions start blocking (§5).
	DefaultSubmissionQueueDepth = 32

	// DefaultEnqueueTimeout is how long a submission waits for a free slot
	// before failing Overloaded (§5).
	DefaultEnqueueTimeout = 3 * time.Second

	// UserTextMaxLength bounds the optional cartoon prompt user text (§4.8).
	UserTextMaxLength = 500

	// ErrorMessageTruncateLength bounds how much of a pipeline error is
	// surfaced in CARTOON_FAILED / CartoonJob.error_message (§4.8 step 7).
	ErrorMessageTruncateLength = 200

	// CircuitBreakerFailureThreshold is the third-party failure count,
	// with no success in between, within one CircuitBreakerWindow that
	// opens the breaker (§7).
	CircuitBreakerFailureThreshold = 5

	// CircuitBreakerWindow is the lifetime of the failure counter, fixed
	// from the first failure after a success or after the previous window
	// expired (§7).
	CircuitBreakerWindow = 60 * time.Second

	// CircuitBreakerOpenDuration is how long the breaker stays open once
	// tripped (§7).
	CircuitBreakerOpenDuration = 30 * time.Second
)

// # Social Graph (C6)

const (
	// PostTextMaxLength bounds Post.text (§4.6.1).
	PostTextMaxLength = 2000

	// DefaultFeedBatchSize is the feed page size when unspecified (§4.6.2).
	DefaultFeedBatchSize = 10

	// MaxFeedBatchSize is the feed page size ceiling (§4.6.2).
	MaxFeedBatchSize = 100

	// LikeBatchChunkSize is the document-store `IN`-clause limit used when
	// batching like-existence checks (§4.6.7).
	LikeBatchChunkSize = 30

	// SystemSenderID is the constant sender id used for notifications the
	// system itself emits (CartoonJob terminal transitions, §4.5).
	SystemSenderID = "system"

	// SystemSenderNickname is the constant display name for SystemSenderID.
	SystemSenderNickname = "HappyDog"

	// NotificationDedupeWindow collapses a burst of identical
	// (recipient, sender, type, target) notifications arriving within this window
	// into one (supplemented open-question resolution, SPEC_FULL.md §4).
	NotificationDedupeWindow = 5 * time.Second
)

// # Pet & Care Profile (C9)

const (
	// DefaultGoalActivityMinutes is the default daily activity goal (§4.9).
	DefaultGoalActivityMinutes = 30

	// DefaultActivityIncrementMinutes is the per-log activity increment (§4.9).
	DefaultActivityIncrementMinutes = 10

	// DefaultGoalMealCount is the default daily meal goal (§4.9).
	DefaultGoalMealCount = 3

	// DefaultMealIncrementCount is the per-log meal increment (§4.9).
	DefaultMealIncrementCount = 1
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore = "core"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRevokedToken     = "auth:revoked_token:"
	RedisPrefixNotifyDedupe     = "notify:dedupe:"
	RedisPrefixBreakerFailures  = "cartoon:breaker:failures"
	RedisPrefixBreakerOpenUntil = "cartoon:breaker:open_until"
)
