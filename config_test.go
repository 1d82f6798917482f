package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	. "gopkg.in/check.v1"
)

var configEnv = []string{"CHESS_ARCHIVE", "DATABASE_URL", "PGDATABASE", "REDIS_URL", "LOG_LEVEL"}

type ConfigSuite struct {
	saved map[string]string
}

var _ = Suite(&ConfigSuite{})

func (s *ConfigSuite) SetUpTest(c *C) {
	s.saved = make(map[string]string)
	for _, key := range configEnv {
		if v, ok := os.LookupEnv(key); ok {
			s.saved[key] = v
		}
		c.Assert(os.Unsetenv(key), IsNil)
	}
}

func (s *ConfigSuite) TearDownTest(c *C) {
	for _, key := range configEnv {
		c.Assert(os.Unsetenv(key), IsNil)
		if v, ok := s.saved[key]; ok {
			c.Assert(os.Setenv(key, v), IsNil)
		}
	}
}

func (s *ConfigSuite) writeConfig(c *C, body string) string {
	name := filepath.Join(c.MkDir(), "webchess.yaml")
	c.Assert(ioutil.WriteFile(name, []byte(body), 0o600), IsNil)
	return name
}

func (s *ConfigSuite) TestDefaults(c *C) {
	config, err := loadConfig("")
	c.Assert(err, IsNil)
	c.Assert(config, DeepEquals, defaultConfig())
}

func (s *ConfigSuite) TestFile(c *C) {
	name := s.writeConfig(c, `
addr: ":9090"
log_level: debug
log_json: true
archive:
  backend: postgres
  dsn: "dbname=chess"
sessions:
  backend: redis
  redis_url: "redis://localhost:6379/0"
  ttl: 30m
`)
	config, err := loadConfig(name)
	c.Assert(err, IsNil)
	c.Assert(config.Addr, Equals, ":9090")
	c.Assert(config.LogLevel, Equals, "debug")
	c.Assert(config.LogJSON, Equals, true)
	c.Assert(config.Archive, Equals, ArchiveConfig{Backend: "postgres", DSN: "dbname=chess"})
	c.Assert(config.Sessions.Backend, Equals, "redis")
	c.Assert(config.Sessions.TTL, Equals, 30*time.Minute)
}

func (s *ConfigSuite) TestEnv(c *C) {
	c.Assert(os.Setenv("CHESS_ARCHIVE", "postgres"), IsNil)
	c.Assert(os.Setenv("PGDATABASE", "test"), IsNil)
	c.Assert(os.Setenv("REDIS_URL", "redis://cache:6379/1"), IsNil)
	config, err := loadConfig("")
	c.Assert(err, IsNil)
	c.Assert(config.Archive.Backend, Equals, "postgres")
	c.Assert(config.Archive.DSN, Equals, "dbname=test")
	c.Assert(config.Sessions.Backend, Equals, "redis")
	c.Assert(config.Sessions.RedisURL, Equals, "redis://cache:6379/1")
}

func (s *ConfigSuite) TestInvalid(c *C) {
	_, err := loadConfig(s.writeConfig(c, "archive:\n  backend: mongo\n"))
	c.Assert(err, ErrorMatches, `unknown archive backend "mongo"`)
	_, err = loadConfig(s.writeConfig(c, "archive:\n  backend: postgres\n"))
	c.Assert(err, ErrorMatches, "postgres archive needs a dsn")
	_, err = loadConfig(s.writeConfig(c, "sessions:\n  backend: redis\n"))
	c.Assert(err, ErrorMatches, "redis sessions need a redis_url")
	_, err = loadConfig(s.writeConfig(c, "addr: [\n"))
	c.Assert(err, ErrorMatches, "parse config .*")
	_, err = loadConfig(filepath.Join(c.MkDir(), "missing.yaml"))
	c.Assert(err, ErrorMatches, "read config: .*")
}
