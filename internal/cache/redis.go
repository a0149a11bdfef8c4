package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wittybrains/busbooking/config"
	"github.com/wittybrains/busbooking/internal/domain"
)

type RedisCache struct {
	client       *redis.Client
	schedulesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, schedulesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		schedulesTTL: schedulesTTL,
	}
}

func (c *RedisCache) GetSchedules(ctx context.Context) ([]domain.TravelSchedule, error) {
	data, err := c.client.Get(ctx, schedulesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var schedules []domain.TravelSchedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *RedisCache) SetSchedules(ctx context.Context, schedules []domain.TravelSchedule) error {
	payload, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, schedulesKey(), payload, c.schedulesTTL).Err()
}

func schedulesKey() string {
	return "cache:schedules"
}
