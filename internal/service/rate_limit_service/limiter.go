package rate_limit_service

import (
	"context"
	"fmt"

	"github.com/careerforge/judge/internal/judge_errors"
	log "github.com/sirupsen/logrus"
)

// Allow reports whether the client identified by key may make another
// request right now. An allowed call records its own timestamp, a denied
// call records nothing. When the store itself fails the limiter fails
// open so a cache outage does not take the whole feature down, the error
// is still returned for the caller to log.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	lock := rl.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	now := rl.Now()
	cutoff := now.Add(-rl.Window)

	recent, err := rl.Store.Prune(ctx, key, cutoff)
	if err != nil {
		err = fmt.Errorf(
			"%w, cannot prune rate limit timestamps for key %s, %w",
			judge_errors.ErrInternal,
			key,
			err,
		)
		log.Error(err)
		return true, err
	}

	if recent >= rl.MaxRequests {
		log.Warnf("rate limit exceeded for client %s", key)
		return false, nil
	}

	if err := rl.Store.Record(ctx, key, now, rl.Window); err != nil {
		err = fmt.Errorf(
			"%w, cannot record rate limit timestamp for key %s, %w",
			judge_errors.ErrInternal,
			key,
			err,
		)
		log.Error(err)
		return true, err
	}

	return true, nil
}
