package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg := LoadConfig()

	assert.Equal(t, "cache:6379", cfg.Addr())
	assert.Equal(t, "pw", cfg.Password)
}

func TestNewRedisClient_NotConfigured(t *testing.T) {
	rdb, err := NewRedisClient(Config{})

	assert.Nil(t, rdb)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
