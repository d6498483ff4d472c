package usecase

import "time"

const (
	// DefaultPostingTimeout bounds the lifetime of one atomic posting unit.
	// A posting that cannot finish within this window is rolled back.
	DefaultPostingTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
