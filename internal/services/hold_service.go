package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"turf-booking/internal/status"

	"github.com/redis/go-redis/v9"
)

// HoldService puts short-lived Redis holds on a (turf, date, slot, court)
// tuple while a user completes payment. Holds are advisory: the booking
// store's transactional create remains the authority on double-booking.
type HoldService struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewHoldService(redisClient *redis.Client, ttl time.Duration) *HoldService {
	return &HoldService{Redis: redisClient, TTL: ttl}
}

func holdKey(turfID, date, slot, court string) string {
	return fmt.Sprintf("hold:%s:%s:%s:%s", turfID, date, slot, court)
}

// HoldSlotForUser takes the hold, releasing any previous hold the same user
// had on another court of the same turf/date/slot. The check and the write
// run under WATCH so two users cannot both take the tuple.
func (s *HoldService) HoldSlotForUser(ctx context.Context, turfID, date, slot, court, userID string) error {
	key := holdKey(turfID, date, slot, court)

	err := s.Redis.Watch(ctx, func(tx *redis.Tx) error {
		heldBy, err := tx.HGet(ctx, key, "held_by").Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if heldBy != "" && heldBy != userID {
			return status.ErrSlotHeld
		}

		// Drop a previous hold by this user on a different court.
		pattern := fmt.Sprintf("hold:%s:%s:%s:*", turfID, date, slot)
		keys, err := tx.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		stale := []string{}
		for _, k := range keys {
			if k == key {
				continue
			}
			owner, _ := tx.HGet(ctx, k, "held_by").Result()
			if owner == userID {
				stale = append(stale, k)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, k := range stale {
				pipe.Del(ctx, k)
			}
			pipe.HSet(ctx, key, map[string]interface{}{
				"held_by": userID,
				"held_at": time.Now().Unix(),
			})
			pipe.Expire(ctx, key, s.TTL)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if err != status.ErrSlotHeld {
			slog.Error("failed to hold slot", "error", err, "turf_id", turfID, "slot", slot, "court", court)
		}
		return err
	}

	return nil
}

// ReleaseHold removes a hold if it belongs to the user.
func (s *HoldService) ReleaseHold(ctx context.Context, turfID, date, slot, court, userID string) error {
	key := holdKey(turfID, date, slot, court)

	heldBy, err := s.Redis.HGet(ctx, key, "held_by").Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if heldBy != userID {
		return status.ErrSlotHeld
	}

	return s.Redis.Del(ctx, key).Err()
}

// HeldCourts returns the courts currently held for a turf/date/slot, keyed
// by court label.
func (s *HoldService) HeldCourts(ctx context.Context, turfID, date, slot string) (map[string]string, error) {
	pattern := fmt.Sprintf("hold:%s:%s:%s:*", turfID, date, slot)
	keys, err := s.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}

	held := make(map[string]string, len(keys))
	prefix := fmt.Sprintf("hold:%s:%s:%s:", turfID, date, slot)
	for _, key := range keys {
		owner, err := s.Redis.HGet(ctx, key, "held_by").Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		held[key[len(prefix):]] = owner
	}

	return held, nil
}
