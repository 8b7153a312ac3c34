// Package config loads server and client settings from YAML with
// HEARTHFORGE_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	Game    GameConfig    `mapstructure:"game"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// ServerConfig configures the WebSocket match host.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	BotDelay        time.Duration `mapstructure:"bot_delay"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig selects where card, deck and hero power definitions live.
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// GameConfig picks the decks and heroes for new matches.
type GameConfig struct {
	Seed        int64  `mapstructure:"seed"`
	PlayerDeck  string `mapstructure:"player_deck"`
	BotDeck     string `mapstructure:"bot_deck"`
	PlayerHero  string `mapstructure:"player_hero"`
	BotHero     string `mapstructure:"bot_hero"`
	PlayerPower string `mapstructure:"player_power"`
	BotPower    string `mapstructure:"bot_power"`
}

// ReplayConfig controls replay recording.
type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_buffer_size", 1024)
	v.SetDefault("server.write_buffer_size", 1024)
	v.SetDefault("server.bot_delay", "500ms")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite.path", "data/hearthforge.db")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.max_conns", 10)
	v.SetDefault("storage.postgres.min_conns", 1)
	v.SetDefault("storage.postgres.max_conn_lifetime", "1h")
	v.SetDefault("storage.postgres.connect_timeout", "5s")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.player_deck", "Mage Basics")
	v.SetDefault("game.bot_deck", "Warrior Basics")
	v.SetDefault("game.player_hero", "")
	v.SetDefault("game.bot_hero", "")
	v.SetDefault("game.player_power", "")
	v.SetDefault("game.bot_power", "")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.dir", "replays")
}

// Default returns the configuration with every default applied.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path. An empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HEARTHFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Address) == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.ReadBufferSize <= 0 || c.Server.WriteBufferSize <= 0 {
		errs = append(errs, errors.New("server buffer sizes must be positive"))
	}
	if c.Server.BotDelay < 0 {
		errs = append(errs, errors.New("server.bot_delay cannot be negative"))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format %q is not json or console", c.Logging.Format))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLite.Path) == "" {
			errs = append(errs, errors.New("storage.sqlite.path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			errs = append(errs, errors.New("storage.postgres.dsn is required for the postgres driver"))
		}
		if c.Storage.Postgres.MaxConns < c.Storage.Postgres.MinConns {
			errs = append(errs, errors.New("storage.postgres.max_conns must be at least min_conns"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not memory, sqlite or postgres", c.Storage.Driver))
	}

	if strings.TrimSpace(c.Game.PlayerDeck) == "" || strings.TrimSpace(c.Game.BotDeck) == "" {
		errs = append(errs, errors.New("game.player_deck and game.bot_deck are required"))
	}
	if c.Replay.Enabled && strings.TrimSpace(c.Replay.Dir) == "" {
		errs = append(errs, errors.New("replay.dir is required when replays are enabled"))
	}

	return errors.Join(errs...)
}
