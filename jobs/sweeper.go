package jobs

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/bsm/redislock"
)

const sweepLockKey = "locks:session-sweep"

func sweepInterval() time.Duration {
	if raw := os.Getenv("SWEEP_INTERVAL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 30 * time.Second
}

// StartSessionSweeper periodically deactivates table sessions whose
// grace window has elapsed. The redis lock keeps the sweep to a single
// instance when several replicas run; the request-time guard still
// covers any lag.
func StartSessionSweeper() {
	locker := redislock.New(initializers.Redis)
	interval := sweepInterval()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			runSweep(ctx, locker)
			cancel()
		}
	}()
}

func runSweep(ctx context.Context, locker *redislock.Client) {
	lock, err := locker.Obtain(ctx, sweepLockKey, 10*time.Second, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return
	}
	if err != nil {
		initializers.LogError("jobs", "obtain sweep lock", err)
		return
	}
	defer lock.Release(ctx)

	count, err := models.SweepExpiredSessions(initializers.DB, models.SessionGrace())
	if err != nil {
		initializers.LogError("jobs", "sweep expired sessions", err)
		return
	}
	if count > 0 {
		initializers.Logger.WithField("expired", count).Info("table sessions expired")
	}
}
