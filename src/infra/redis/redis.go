package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client            redis.UniversalClient
	defaultTTLSeconds time.Duration
}

// NewRedisClient aceita uma lista separada por vírgulas; com mais de um
// endereço o go-redis sobe um cliente de cluster.
func NewRedisClient(addrs string, poolSize int, defaultTTLSeconds time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 10,

		MaxRedirects: 3,

		// Timeouts otimizados para cache
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:            client,
		defaultTTLSeconds: defaultTTLSeconds,
	}
}

// versionTTL precisa ser bem maior que o TTL dos dados.
const versionTTL = 24 * time.Hour

// SetKeyIfVersion grava o valor apenas se versionKey ainda estiver em version.
// key e versionKey precisam cair no mesmo slot (hash tag) quando em cluster.
func (rc *RedisClient) SetKeyIfVersion(ctx context.Context, key string, versionKey string, version int64, value string) (bool, error) {
	fields := map[string]interface{}{
		"data":      value,
		"cached_at": time.Now().Unix(),
	}

	stored := false
	err := rc.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, versionKey)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.Expire(ctx, key, rc.defaultTTLSeconds)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, versionKey)

	// a versão mudou entre o WATCH e o EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// GetVersion devolve 0 quando a chave de versão ainda não existe.
func (rc *RedisClient) GetVersion(ctx context.Context, versionKey string) (int64, error) {
	return readVersion(ctx, rc.client, versionKey)
}

func (rc *RedisClient) IncrVersions(ctx context.Context, versionKeys []string) error {
	pipe := rc.client.Pipeline()
	for _, versionKey := range versionKeys {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, client getter, versionKey string) (int64, error) {
	version, err := client.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, key, "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// InvalidateKeys apaga chave a chave: em cluster um DEL com várias chaves
// falha quando elas caem em slots diferentes.
func (rc *RedisClient) InvalidateKeys(ctx context.Context, keys []string) error {
	var failures []string

	for _, key := range keys {
		if err := rc.client.Del(ctx, key).Err(); err != nil {
			failures = append(failures, fmt.Sprintf("key %s: %v", key, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("invalidation errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
