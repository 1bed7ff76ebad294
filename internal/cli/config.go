package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

// Cache backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the contents of config.toml. Every field is optional.
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//
//	[cache.redis]
//	url = "redis://localhost:6379/0"
//
//	[sweep]
//	max_cells = 250000
//
//	[server]
//	listen = ":9090"
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Sweep  SweepConfig  `toml:"sweep"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string        `toml:"backend"` // file (default), redis, mongo, none
	Dir     string        `toml:"dir"`     // file backend directory, default $XDG_CACHE_HOME/hypercuboid
	TTL     time.Duration `toml:"ttl"`
	Prefix  string        `toml:"prefix"` // key namespace shared by all backends
	Redis   RedisConfig   `toml:"redis"`
	Mongo   MongoConfig   `toml:"mongo"`
}

// RedisConfig mirrors cache.RedisConfig.
type RedisConfig struct {
	URL      string `toml:"url"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig mirrors cache.MongoConfig.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SweepConfig holds defaults for integrate.
type SweepConfig struct {
	Mode     string `toml:"mode"`
	MaxCells int    `toml:"max_cells"`
}

// ServerConfig configures "hypercuboid serve".
type ServerConfig struct {
	Listen       string        `toml:"listen"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: backendFile},
		Sweep: SweepConfig{Mode: sweep.ModeCoverage.String(), MaxCells: pipeline.DefaultMaxCells},
		Server: ServerConfig{
			Listen:       ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
			MaxBodyBytes: 16 << 20,
		},
	}
}

// loadConfig reads the config file at path on top of the defaults. An
// empty path means the default location, which may be absent.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	} else if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.Redis.URL != "" {
			if err := errors.ValidateURL(c.Cache.Redis.URL, "redis", "rediss"); err != nil {
				return err
			}
		}
	case backendMongo:
		if err := errors.ValidateURL(c.Cache.Mongo.URI, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must be >= 0")
	}
	if _, err := sweep.ParseMode(c.Sweep.Mode); err != nil {
		return err
	}
	if c.Sweep.MaxCells < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sweep max_cells must be >= 0")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server max_body_bytes must be >= 0")
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hypercuboid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/hypercuboid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
