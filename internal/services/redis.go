package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/pkg/utils"
)

// Sessions is the identity gate's storage contract: mint a cookie token,
// resolve it back to a user id, and revoke it.
type Sessions interface {
	Create(ctx context.Context, userID uint) (string, error)
	UserID(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
}

// Events publishes state changes other processes may care about.
type Events interface {
	ReservationUpdated(ctx context.Context, rideID, passengerID uint, status string) error
}

// RedisStore backs both sessions and event publishing with a single client.
type RedisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func InitRedis(redisURL string, sessionTTL time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisStore{client: client, sessionTTL: sessionTTL}, nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Create registers a new session and returns the signed cookie token.
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(sid), userID, s.sessionTTL).Err(); err != nil {
		return "", err
	}
	return utils.GenerateSessionToken(sid, userID, s.sessionTTL)
}

// UserID resolves a cookie token to the acting user. The signature must be
// valid and the sid still live; a logged-out or expired session fails even
// when the token itself has not expired.
func (s *RedisStore) UserID(ctx context.Context, token string) (uint, error) {
	sid, claimedID, err := utils.ParseSessionToken(token)
	if err != nil {
		return 0, apperrors.ErrNotAuthenticated
	}

	raw, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return 0, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return 0, err
	}

	storedID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || uint(storedID) != claimedID {
		return 0, apperrors.ErrNotAuthenticated
	}

	return claimedID, nil
}

// Destroy revokes the session server-side. A missing key is not an error;
// a store failure is, and surfaces as a 500 to the caller.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	sid, _, err := utils.ParseSessionToken(token)
	if err != nil {
		return apperrors.ErrNotAuthenticated
	}
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// ReservationUpdated publishes a reservation status change on the
// reservation:updates channel.
func (s *RedisStore) ReservationUpdated(ctx context.Context, rideID, passengerID uint, status string) error {
	payload := map[string]interface{}{
		"covoiturage_id": rideID,
		"passager_id":    passengerID,
		"statut":         status,
		"timestamp":      time.Now().Unix(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.client.Publish(ctx, "reservation:updates", data).Err()
}
