// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package readiness

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Delay returns min(base * 2^attempt, max) for a 0-indexed attempt.
func Delay(attempt int, base, max time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		if d > max/2 {
			return max
		}
		d *= 2
	}
	if d > max {
		return max
	}
	return d
}

// Jitter scales d by a factor in [0.5, 1.5) chosen by r, which must be in [0, 1).
func Jitter(d time.Duration, r float64) time.Duration {
	return time.Duration(float64(d) * (0.5 + r))
}

// schedule is the jittered exponential backoff consumed by backoff.Retry.
type schedule struct {
	attempt int
	base    time.Duration
	max     time.Duration
	rand    func() float64
}

var _ backoff.BackOff = &schedule{}

func (s *schedule) NextBackOff() time.Duration {
	d := Jitter(Delay(s.attempt, s.base, s.max), s.rand())
	s.attempt++
	return d
}

func (s *schedule) Reset() {
	s.attempt = 0
}
