package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const claimCacheTTL = 5 * time.Minute

// InitRedis initializes the Redis client
func InitRedis(redisURL string) error {
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

type cachedClaim struct {
	Email string `json:"email"`
	UID   string `json:"uid"`
}

// CacheVerifiedClaim stores the claims of an already-verified token,
// keyed by a digest of the token. Best effort: a cache miss or a down
// Redis just means the next request verifies against Firebase again.
func CacheVerifiedClaim(ctx context.Context, tokenDigest, email, uid string) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(cachedClaim{Email: email, UID: uid})
	if err != nil {
		return
	}
	key := fmt.Sprintf("auth:claim:%s", tokenDigest)
	RedisClient.Set(ctx, key, data, claimCacheTTL)
}

// GetVerifiedClaim returns the cached claims for a token digest, if any.
func GetVerifiedClaim(ctx context.Context, tokenDigest string) (email, uid string, ok bool) {
	if RedisClient == nil {
		return "", "", false
	}
	key := fmt.Sprintf("auth:claim:%s", tokenDigest)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return "", "", false
	}

	var claim cachedClaim
	if err := json.Unmarshal([]byte(data), &claim); err != nil || claim.Email == "" {
		return "", "", false
	}
	return claim.Email, claim.UID, true
}
