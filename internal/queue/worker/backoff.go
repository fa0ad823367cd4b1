package worker

import (
	"math/rand"
	"time"
)

const (
	backoffBase = 2 * time.Second
	backoffCap  = 5 * time.Minute
)

// ExponentialBackoff doubles the delay per attempt (2s, 4s, 8s, ...) up to a
// cap, with up to 250ms of jitter so retries don't land in lockstep.
func ExponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := backoffBase
	for i := 0; i < attempt && delay < backoffCap; i++ {
		delay *= 2
	}

	if delay > backoffCap {
		delay = backoffCap
	}

	return delay + time.Duration(rand.Intn(250))*time.Millisecond
}
