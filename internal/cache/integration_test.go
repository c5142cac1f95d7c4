//go:build integration

package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcredis.RedisContainer
	cfg       Config
	logger    *slog.Logger
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := tcredis.Run(s.ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)
	s.cfg = Config{Addr: endpoint, TTL: time.Hour}
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestUploads_MissReturnsEmpty() {
	cache, err := NewUploads(s.ctx, s.cfg, s.logger)
	s.Require().NoError(err)
	defer cache.Close()

	id, err := cache.GetUploads(s.ctx, "UCunknown")
	s.NoError(err)
	s.Empty(id)
}

func (s *RedisIntegrationSuite) TestUploads_SetThenGet() {
	cache, err := NewUploads(s.ctx, s.cfg, s.logger)
	s.Require().NoError(err)
	defer cache.Close()

	s.Require().NoError(cache.SetUploads(s.ctx, "UCabc", "UUabc"))

	id, err := cache.GetUploads(s.ctx, "UCabc")
	s.NoError(err)
	s.Equal("UUabc", id)

	ttl, err := cache.client.TTL(s.ctx, uploadsKeyPrefix+"UCabc").Result()
	s.NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisIntegrationSuite) TestNewUploads_UnreachableServer() {
	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()

	_, err := NewUploads(ctx, Config{Addr: "127.0.0.1:1"}, s.logger)
	s.Error(err)
}
