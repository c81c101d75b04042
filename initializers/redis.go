package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis holds the carts (keyed by table session token) and backs the
// sweeper lock shared between instances.
var Redis *redis.Client

func ConnectToRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}
	log.Println("Connected to redis.")
}
