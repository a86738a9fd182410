package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestLoad_Defaults() {
	cfg, err := Load("")

	suite.Require().NoError(err)
	suite.Equal("planner", cfg.App.Name)
	suite.Equal(8080, cfg.Server.Port)
	suite.Equal(30*time.Second, cfg.Server.RequestTimeout)
	suite.Equal("sqlite", cfg.Database.Driver)
	suite.Equal("memory", cfg.Cache.Driver)
	suite.Equal(50.0, cfg.Shopping.DefaultPrice)
	suite.Equal("ru", cfg.Shopping.Locale)
	suite.False(cfg.Shopping.GroupByUnit)
	suite.Equal("default", cfg.Shopping.UserID)
	suite.Equal("/metrics", cfg.Monitoring.MetricsPath)
}

func (suite *ConfigTestSuite) TestLoad_FileAndEnvironment() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(`
server:
  port: 9090
cache:
  driver: redis
  ttl: 1m
shopping:
  group_by_unit: true
`), 0o600))

	suite.T().Setenv("PLANNER_SHOPPING_DEFAULT_PRICE", "75")
	suite.T().Setenv("PLANNER_SERVER_PORT", "9191")

	cfg, err := Load(path)

	suite.Require().NoError(err)
	suite.Equal(9191, cfg.Server.Port)
	suite.Equal("redis", cfg.Cache.Driver)
	suite.Equal(time.Minute, cfg.Cache.TTL)
	suite.True(cfg.Shopping.GroupByUnit)
	suite.Equal(75.0, cfg.Shopping.DefaultPrice)
	suite.Equal("localhost:6379", cfg.Redis.Addr())
}

func (suite *ConfigTestSuite) TestLoad_InvalidValues() {
	suite.Run("UnknownCacheDriver_ShouldFail", func() {
		suite.T().Setenv("PLANNER_CACHE_DRIVER", "memcached")

		_, err := Load("")

		suite.ErrorContains(err, "cache.driver")
	})

	suite.Run("NegativePrice_ShouldFail", func() {
		suite.T().Setenv("PLANNER_SHOPPING_DEFAULT_PRICE", "-1")

		_, err := Load("")

		suite.ErrorContains(err, "shopping.default_price")
	})

	suite.Run("MissingFile_ShouldFail", func() {
		_, err := Load(filepath.Join(suite.T().TempDir(), "absent.yaml"))

		suite.Error(err)
	})
}
