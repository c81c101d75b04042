package utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/redis/go-redis/v9"
)

// Carts live in redis under the table session token and disappear with
// the session; they are never written to the database. Load and save are
// explicit: handlers load, mutate, save.

const cartTTL = 12 * time.Hour

func cartKey(sessionToken string) string {
	return "cart:" + sessionToken
}

func LoadCart(ctx context.Context, sessionToken string) (*models.Cart, error) {
	raw, err := initializers.Redis.Get(ctx, cartKey(sessionToken)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	if cart.Lines == nil {
		cart.Lines = map[uint]models.CartLine{}
	}
	return &cart, nil
}

func SaveCart(ctx context.Context, sessionToken string, cart *models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return initializers.Redis.Set(ctx, cartKey(sessionToken), raw, cartTTL).Err()
}

func ClearCart(ctx context.Context, sessionToken string) error {
	return initializers.Redis.Del(ctx, cartKey(sessionToken)).Err()
}
