package store

import (
	"context"
	"encoding/json"
	"time"

	"elasticreplan/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is the production Store backed by a single redis.Client.
// Every Store method swallows errors into a logged warning: a session store
// outage degrades to cache misses, never to a failed replan (spec.md §6).
type RedisStore struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

// NewRedis connects to addr (e.g. "localhost:6379") and returns a Store.
func NewRedis(addr string, log *zap.SugaredLogger) *RedisStore {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) warn(op string, err error) {
	if err != nil && err != redis.Nil {
		s.log.Warnw("session store operation failed", "op", op, "error", err)
	}
}

func (s *RedisStore) GetDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode) (CachedLeg, bool) {
	raw, err := s.client.Get(ctx, DirectionsKey(origin, destination, mode)).Result()
	if err != nil {
		s.warn("get_directions", err)
		return CachedLeg{}, false
	}
	var leg CachedLeg
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		s.warn("decode_directions", err)
		return CachedLeg{}, false
	}
	return leg, true
}

func (s *RedisStore) PutDirections(ctx context.Context, origin, destination model.Coord, mode model.Mode, leg CachedLeg) {
	raw, err := json.Marshal(leg)
	if err != nil {
		s.warn("encode_directions", err)
		return
	}
	if err := s.client.Set(ctx, DirectionsKey(origin, destination, mode), raw, TTL).Err(); err != nil {
		s.warn("put_directions", err)
	}
}

func (s *RedisStore) GetItinerary(ctx context.Context, sessionID string) (*model.Itinerary, bool) {
	return s.getItineraryKey(ctx, ItineraryKey(sessionID))
}

func (s *RedisStore) GetPreviousItinerary(ctx context.Context, sessionID string) (*model.Itinerary, bool) {
	return s.getItineraryKey(ctx, PreviousItineraryKey(sessionID))
}

func (s *RedisStore) getItineraryKey(ctx context.Context, key string) (*model.Itinerary, bool) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		s.warn("get_itinerary", err)
		return nil, false
	}
	var it model.Itinerary
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		s.warn("decode_itinerary", err)
		return nil, false
	}
	return &it, true
}

// PutItinerary writes the current itinerary and rotates the previous one
// into the :prev slot, the sequence that makes undo possible.
func (s *RedisStore) PutItinerary(ctx context.Context, sessionID string, it *model.Itinerary) {
	if prev, ok := s.GetItinerary(ctx, sessionID); ok {
		if raw, err := json.Marshal(prev); err == nil {
			if err := s.client.Set(ctx, PreviousItineraryKey(sessionID), raw, TTL).Err(); err != nil {
				s.warn("put_prev_itinerary", err)
			}
		}
	}
	raw, err := json.Marshal(it)
	if err != nil {
		s.warn("encode_itinerary", err)
		return
	}
	if err := s.client.Set(ctx, ItineraryKey(sessionID), raw, TTL).Err(); err != nil {
		s.warn("put_itinerary", err)
	}
}

func (s *RedisStore) GetLegGraph(ctx context.Context, sessionID, from, to string, mode model.Mode) (CachedLeg, bool) {
	raw, err := s.client.Get(ctx, LegGraphKey(sessionID, from, to, mode)).Result()
	if err != nil {
		s.warn("get_leg_graph", err)
		return CachedLeg{}, false
	}
	var leg CachedLeg
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		s.warn("decode_leg_graph", err)
		return CachedLeg{}, false
	}
	return leg, true
}

func (s *RedisStore) PutLegGraph(ctx context.Context, sessionID, from, to string, mode model.Mode, leg CachedLeg) {
	raw, err := json.Marshal(leg)
	if err != nil {
		s.warn("encode_leg_graph", err)
		return
	}
	if err := s.client.Set(ctx, LegGraphKey(sessionID, from, to, mode), raw, TTL).Err(); err != nil {
		s.warn("put_leg_graph", err)
	}
}

func (s *RedisStore) PushDisruption(ctx context.Context, sessionID string, event *model.DisruptionEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		s.warn("encode_disruption", err)
		return
	}
	key := DisruptionsKey(sessionID)
	if err := s.client.LPush(ctx, key, raw).Err(); err != nil {
		s.warn("push_disruption", err)
		return
	}
	if err := s.client.Expire(ctx, key, TTL).Err(); err != nil {
		s.warn("expire_disruptions", err)
	}
}

// Ping checks connectivity and returns the error, if any; the service and
// the seed tool call it at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
