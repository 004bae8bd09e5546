package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// DefaultTexture replaces the TrenchBroom empty-texture sentinel when the
// user has not configured anything else.
const DefaultTexture = "dev/dev_measuregeneric01b"

// configFile is the optional TOML config looked up in the working directory.
const configFile = "map2vmf.toml"

type Config struct {
	DefaultTexture string `toml:"default_texture"`
	WorkerCount    int    `toml:"worker_count"`
	LogFile        string `toml:"log_file"`
	LogMaxSizeMB   int    `toml:"log_max_size_mb"`
	LogMaxBackups  int    `toml:"log_max_backups"`
}

// Load builds the configuration from defaults, then the optional TOML file,
// then the environment (highest precedence). A .env file is honored if
// present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		DefaultTexture: DefaultTexture,
		WorkerCount:    4,
		LogMaxSizeMB:   10,
		LogMaxBackups:  3,
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			log.Warn().Err(err).Str("file", configFile).Msg("Ignoring malformed config file")
		}
	}

	cfg.DefaultTexture = getEnv("MAP2VMF_DEFAULT_TEXTURE", cfg.DefaultTexture)
	cfg.WorkerCount = getEnvInt("MAP2VMF_WORKER_COUNT", cfg.WorkerCount)
	cfg.LogFile = getEnv("MAP2VMF_LOG_FILE", cfg.LogFile)
	cfg.LogMaxSizeMB = getEnvInt("MAP2VMF_LOG_MAX_SIZE_MB", cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = getEnvInt("MAP2VMF_LOG_MAX_BACKUPS", cfg.LogMaxBackups)

	if strings.TrimSpace(cfg.DefaultTexture) == "" {
		cfg.DefaultTexture = DefaultTexture
	}

	return cfg
}

// ResolveTexture applies a per-invocation override on top of the configured
// default. Blank overrides fall back rather than producing faces with an
// empty material.
func (c *Config) ResolveTexture(override string) string {
	if t := strings.TrimSpace(override); t != "" {
		return t
	}
	if t := strings.TrimSpace(c.DefaultTexture); t != "" {
		return t
	}
	return DefaultTexture
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
