package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alchemorsel/planner/internal/infrastructure/config"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CacheRepositoryTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	repo   *CacheRepository
	ctx    context.Context
}

func TestCacheRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CacheRepositoryTestSuite))
}

func (suite *CacheRepositoryTestSuite) SetupTest() {
	suite.server = miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: suite.server.Addr()})
	suite.T().Cleanup(func() { _ = client.Close() })
	suite.repo = NewCacheRepository(client, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *CacheRepositoryTestSuite) TestRoundTrip() {
	suite.Run("Set_ShouldBeReadable", func() {
		suite.Require().NoError(suite.repo.Set(suite.ctx, "recipe:1", []byte(`{"id":1}`), time.Minute))

		data, err := suite.repo.Get(suite.ctx, "recipe:1")

		suite.Require().NoError(err)
		suite.Equal(`{"id":1}`, string(data))
		suite.True(suite.server.Exists(KeyPrefix + "recipe:1"))
	})

	suite.Run("Missing_ShouldReturnErrCacheMiss", func() {
		_, err := suite.repo.Get(suite.ctx, "recipe:absent")

		suite.ErrorIs(err, outbound.ErrCacheMiss)
	})

	suite.Run("Expired_ShouldReturnErrCacheMiss", func() {
		suite.Require().NoError(suite.repo.Set(suite.ctx, "recipe:2", []byte("x"), time.Second))
		suite.server.FastForward(2 * time.Second)

		_, err := suite.repo.Get(suite.ctx, "recipe:2")

		suite.ErrorIs(err, outbound.ErrCacheMiss)
	})

	suite.Run("Delete_ShouldRemoveKey", func() {
		suite.Require().NoError(suite.repo.Set(suite.ctx, "recipe:3", []byte("x"), 0))
		exists, err := suite.repo.Exists(suite.ctx, "recipe:3")
		suite.Require().NoError(err)
		suite.True(exists)

		suite.Require().NoError(suite.repo.Delete(suite.ctx, "recipe:3"))

		exists, err = suite.repo.Exists(suite.ctx, "recipe:3")
		suite.Require().NoError(err)
		suite.False(exists)
	})
}

func (suite *CacheRepositoryTestSuite) TestNewClient() {
	port, err := strconv.Atoi(suite.server.Port())
	suite.Require().NoError(err)

	suite.Run("Reachable_ShouldPing", func() {
		client, err := NewClient(suite.ctx, config.RedisConfig{Host: suite.server.Host(), Port: port}, zap.NewNop())

		suite.Require().NoError(err)
		suite.NoError(client.Close())
	})

	suite.Run("Unreachable_ShouldFail", func() {
		_, err := NewClient(suite.ctx, config.RedisConfig{
			Host:        "127.0.0.1",
			Port:        1,
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		}, zap.NewNop())

		suite.Error(err)
	})
}
