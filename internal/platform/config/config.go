// Package config loads process configuration from an optional YAML file and
// CERTHUB_* environment variables. The resulting Config is passed explicitly
// to constructors; nothing here holds global state.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"certhub/pkg/platform/listutil"
)

const envPrefix = "CERTHUB"

type Config struct {
	Server        Server        `mapstructure:"server"`
	Database      Database      `mapstructure:"database"`
	Logging       Logging       `mapstructure:"logging"`
	Notifications Notifications `mapstructure:"notifications"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	AdminToken      string        `mapstructure:"admin_token"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Database configures the Postgres pool. An empty URL selects in-memory stores.
type Database struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Notifications selects the event observers. Redis and Kafka sinks are only
// attached when their address is set.
type Notifications struct {
	EmailFrom         string   `mapstructure:"email_from"`
	RedisURL          string   `mapstructure:"redis_url"`
	RedisStream       string   `mapstructure:"redis_stream"`
	RedisStreamMaxLen int64    `mapstructure:"redis_stream_max_len"`
	KafkaBrokers      []string `mapstructure:"kafka_brokers"`
	KafkaTopic        string   `mapstructure:"kafka_topic"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.admin_token", "")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("notifications.email_from", "noreply@certhub.local")
	v.SetDefault("notifications.redis_url", "")
	v.SetDefault("notifications.redis_stream", "certhub:events")
	v.SetDefault("notifications.redis_stream_max_len", 10000)
	v.SetDefault("notifications.kafka_brokers", []string{})
	v.SetDefault("notifications.kafka_topic", "certhub.events")
}

// Load reads configuration. path may be empty, in which case only defaults and
// the environment apply. CERTHUB_SERVER_ADDR overrides server.addr and so on.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.CORSOrigins = listutil.Normalize(cfg.Server.CORSOrigins)
	cfg.Notifications.KafkaBrokers = listutil.Normalize(cfg.Notifications.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("database pool sizes must not be negative"))
	}
	return errors.Join(errs...)
}
