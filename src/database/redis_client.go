package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
)

// InitRedis connects to Redis if REDIS_URI is set. Redis is optional: it
// backs the leaderboard cache and the asynq broker, and the API runs
// without it.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		log.Println("REDIS_URI not set, leaderboard cache and background jobs disabled")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr: RedisURI,
		DB:   0,
	})
	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		log.Println("warning: failed to connect Redis:", err)
		RedisClient = nil
		RedisURI = ""
	}
}
