package db

import (
  "context"
  "fmt"
  "time"

  "github.com/redis/go-redis/v9"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/utils"
)

// NewRedisClient connects to the cache used for the superadmin overview
// counters. Callers must treat cache errors as soft failures.
func NewRedisClient(log *logger.Logger) (*redis.Client, error) {
  addr := utils.GetEnv("REDIS_ADDR", "", log)
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := redis.NewClient(&redis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    return nil, fmt.Errorf("redis ping: %w", err)
  }
  return rdb, nil
}
