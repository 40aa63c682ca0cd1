package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const serviceKeyPrefix = "booking:service:"

func serviceKey(id string) string {
	return serviceKeyPrefix + id
}

// ServiceCache is a read-through cache in front of a ServiceRepository.
// Services never change, so entries only expire by TTL. Redis failures fall
// through to the wrapped repository.
type ServiceCache struct {
	next   domain.ServiceRepository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewServiceCache(
	next domain.ServiceRepository,
	client *redis.Client,
	ttl time.Duration,
	log *zap.Logger,
) *ServiceCache {
	return &ServiceCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *ServiceCache) GetService(ctx context.Context, id string) (*models.Service, error) {
	key := serviceKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s models.Service
		if err := json.Unmarshal(data, &s); err == nil {
			return &s, nil
		}
		c.log.Warn("service cache: corrupt entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("service cache: get failed", zap.String("key", key), zap.Error(err))
	}

	s, err := c.next.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(s); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("service cache: set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return s, nil
}

var _ domain.ServiceRepository = (*ServiceCache)(nil)
