// Package lock implementa el candado por parceria que serializa los cambios de estado.
package lock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/pkg/config"
)

const keyPrefix = "parcerias:toggle:"

// defaultTTL corresponde al timeout por defecto del backend (15 s).
var defaultTTL = config.ToggleLockTTL(15 * time.Second)

var _ partnership.RowLock = (*RedisRowLock)(nil)

// store operaciones de Redis que usa RedisRowLock.
type store interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRowLock candado SETNX + TTL compartido entre réplicas del BFF.
type RedisRowLock struct {
	client store
	ttl    time.Duration
}

// NewRedisClient abre la conexión con Redis (REDIS_URL tiene prioridad sobre REDIS_ADDR) y hace ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opts = parsed
	case cfg.Address != "":
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	default:
		return nil, errors.New("redis: REDIS_URL o REDIS_ADDR requerido")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisRowLock construye el candado. ttl <= 0 usa el TTL del timeout por defecto del backend.
func NewRedisRowLock(client store, ttl time.Duration) (*RedisRowLock, error) {
	if client == nil {
		return nil, errors.New("redis client requerido para el candado")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisRowLock{client: client, ttl: ttl}, nil
}

// TryAcquire intenta tomar el candado de la parceria sin esperar.
func (l *RedisRowLock) TryAcquire(ctx context.Context, partnershipID int64) (func(), bool, error) {
	key := keyPrefix + strconv.FormatInt(partnershipID, 10)
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("setnx %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// se libera aunque la request ya haya terminado
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		value, err := l.client.Get(rctx, key).Result()
		if err != nil || value != owner {
			return
		}
		_ = l.client.Del(rctx, key).Err()
	}
	return release, true, nil
}
