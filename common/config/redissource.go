package config

import (
	"strings"

	"github.com/mediocregopher/radix/v3"
	"github.com/sirupsen/logrus"
)

const redisConfigHash = "yagmod_config"

// RedisConfigStore reads options from a single redis hash, keys are stored without the "yagmod." prefix
type RedisConfigStore struct {
	Pool radix.Client
}

func NewRedisConfigStore(addr string, poolSize int) (*RedisConfigStore, error) {
	pool, err := radix.NewPool("tcp", addr, poolSize)
	if err != nil {
		return nil, err
	}

	return &RedisConfigStore{Pool: pool}, nil
}

func (rs *RedisConfigStore) GetValue(key string) interface{} {
	prefixStripped := strings.TrimPrefix(key, "yagmod.")

	var v string
	err := rs.Pool.Do(radix.Cmd(&v, "HGET", redisConfigHash, prefixStripped))
	if err != nil {
		logrus.WithError(err).Error("[redis_config_source] failed retrieving value")
		return nil
	}

	if v == "" {
		return nil
	}

	return v
}

func (rs *RedisConfigStore) SaveValue(key, value string) error {
	prefixStripped := strings.TrimPrefix(key, "yagmod.")
	return rs.Pool.Do(radix.Cmd(nil, "HSET", redisConfigHash, prefixStripped, value))
}

func (rs *RedisConfigStore) Name() string {
	return "redis"
}

func (rs *RedisConfigStore) Close() error {
	return rs.Pool.Close()
}
