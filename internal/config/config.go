// config holds client configuration loaded from YAML and/or environment
// variables. Load priority:
//  1. explicit path passed to MustLoad/Load;
//  2. CONFIG_PATH environment variable;
//  3. ./local.yaml in the working directory;
//  4. environment variables only.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"voteroom/internal/constants"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	HTTP    HTTPConfig    `yaml:"http"`
	WS      WSConfig      `yaml:"ws"`
	Token   TokenConfig   `yaml:"token"`
	WireLog WireLogConfig `yaml:"wirelog"`
}

// ServerConfig: the service origin. Both API roots and the websocket
// scheme/host derive from URL.
type ServerConfig struct {
	URL                string `yaml:"url" env:"VOTEROOM_SERVER" env-default:"http://localhost:8080"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" env:"VOTEROOM_INSECURE_SKIP_VERIFY" env-default:"false"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"VOTEROOM_HTTP_TIMEOUT" env-default:"15s"`
}

type WSConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout" env:"VOTEROOM_WS_HANDSHAKE_TIMEOUT" env-default:"10s"`
}

// TokenConfig: durable credential storage. With an empty Redis host the
// token is kept in a file under the user's data directory.
type TokenConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"username" env:"REDIS_USERNAME" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:""`
}

type WireLogConfig struct {
	Enabled bool `yaml:"enabled" env:"VOTEROOM_WIRELOG" env-default:"false"`
}

// MustLoad is Load with panic on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if path != "" {
		return tryRead(path)
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return tryRead(env)
	}
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Server.URL = strings.TrimSuffix(c.Server.URL, "/")
	if c.Server.URL == "" {
		c.Server.URL = constants.DefaultServerURL
	}
	if !strings.HasPrefix(c.Server.URL, "http://") && !strings.HasPrefix(c.Server.URL, "https://") {
		return fmt.Errorf("server url must start with http:// or https://: %s", c.Server.URL)
	}
	if c.Token.Redis.Prefix == "" {
		c.Token.Redis.Prefix = constants.RedisPrefix
	}
	return nil
}
