package booking

import (
	"context"
	"sort"
	"time"

	"deskhive/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatLocker serializes booking creation per seat. The availability check and
// the booking insert are not one store transaction, so without a lock two
// concurrent requests for the same seat could both pass the check before
// either writes its ledger entries.
type SeatLocker interface {
	// AcquireAll takes a short lease on every seat and returns a release
	// function. ErrSeatsContended is returned when any seat is already leased.
	AcquireAll(ctx context.Context, seatIDs []string) (func(), error)
}

// RedisSeatLocker implements SeatLocker with per-seat SETNX leases. Seats are
// locked in sorted order so two requests for overlapping seat sets cannot
// deadlock, and every lease carries a TTL backstop in case a caller dies
// before releasing.
type RedisSeatLocker struct {
	Client *redis.Client
	Logger *zap.Logger
	TTL    time.Duration
}

// NewRedisSeatLocker constructs a RedisSeatLocker with the default lease TTL.
func NewRedisSeatLocker(client *redis.Client, logger *zap.Logger) *RedisSeatLocker {
	return &RedisSeatLocker{Client: client, Logger: logger, TTL: utils.SeatLockTTL}
}

// releaseScript deletes a lease only if this caller still owns it, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisSeatLocker) AcquireAll(ctx context.Context, seatIDs []string) (func(), error) {
	keys := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		keys = append(keys, utils.SeatLockPrefix+id)
	}
	sort.Strings(keys)

	token := uuid.New().String()
	acquired := make([]string, 0, len(keys))

	release := func() {
		for _, key := range acquired {
			if err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Err(); err != nil && err != redis.Nil {
				l.Logger.Warn("failed to release seat lock", zap.String("key", key), zap.Error(err))
			}
		}
	}

	for _, key := range keys {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			release()
			return nil, err
		}
		if !ok {
			release()
			return nil, ErrSeatsContended
		}
		acquired = append(acquired, key)
	}
	return release, nil
}
