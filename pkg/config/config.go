package config

import (
	"errors"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/dmitrymomot/anvil/pkg/auth"
	"github.com/dmitrymomot/anvil/pkg/db"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for config loading.
var (
	// ErrReadFile is returned when the config file cannot be read.
	ErrReadFile = errors.New("config: failed to read file")

	// ErrParseFile is returned when the config file is not valid YAML.
	ErrParseFile = errors.New("config: failed to parse file")
)

// Duration wraps time.Duration so YAML scalars like "30s" decode
// with time.ParseDuration syntax.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Join(ErrParseFile, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	Env   string `yaml:"env"`
	Debug bool   `yaml:"debug"`

	AppHost string `yaml:"app_host"`
	AppPort int    `yaml:"app_port"`

	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	WriterDBURL string `yaml:"writer_db_url"`
	ReaderDBURL string `yaml:"reader_db_url"`

	JWTSecretKey string `yaml:"jwt_secret_key"`
	JWTAlgorithm string `yaml:"jwt_algorithm"`

	SentryDSN string `yaml:"sentry_dsn"`

	RedisHost string `yaml:"redis_host"`
	RedisPort int    `yaml:"redis_port"`

	JobQueue   string `yaml:"job_queue"`
	JobWorkers int    `yaml:"job_workers"`
}

// Default returns the local-development configuration.
// Secrets have no default and must come from the file or environment.
func Default() Config {
	return Config{
		Env:             "local",
		Debug:           true,
		AppHost:         "0.0.0.0",
		AppPort:         8000,
		ShutdownTimeout: Duration(30 * time.Second),
		JWTAlgorithm:    "HS256",
		RedisHost:       "localhost",
		RedisPort:       6379,
		JobQueue:        "default",
		JobWorkers:      10,
	}
}

// Load builds the configuration in three layers: defaults, then the
// optional YAML file at path (empty path skips the file), then
// environment variables. Later layers override earlier ones, so a set
// environment variable always wins.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Join(ErrParseFile, err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// MustLoad is Load that panics on error. Intended for main functions.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) applyEnv() {
	c.Env = env("ENV", c.Env)
	c.Debug = envBool("DEBUG", c.Debug)
	c.AppHost = env("APP_HOST", c.AppHost)
	c.AppPort = envInt("APP_PORT", c.AppPort)
	c.ShutdownTimeout = Duration(envDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout.Std()))
	c.WriterDBURL = env("WRITER_DB_URL", c.WriterDBURL)
	c.ReaderDBURL = env("READER_DB_URL", c.ReaderDBURL)
	c.JWTSecretKey = env("JWT_SECRET_KEY", c.JWTSecretKey)
	c.JWTAlgorithm = env("JWT_ALGORITHM", c.JWTAlgorithm)
	c.SentryDSN = env("SENTRY_DSN", c.SentryDSN)
	c.RedisHost = env("REDIS_HOST", c.RedisHost)
	c.RedisPort = envInt("REDIS_PORT", c.RedisPort)
	c.JobQueue = env("JOB_QUEUE", c.JobQueue)
	c.JobWorkers = envInt("JOB_WORKERS", c.JobWorkers)
}

// IsProduction reports whether the process runs with the production
// environment selected.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Addr returns the host:port the HTTP server should listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.AppHost, strconv.Itoa(c.AppPort))
}

// RedisURL builds the connection URL for pkg/redis.Open.
func (c Config) RedisURL() string {
	return "redis://" + net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort)) + "/0"
}

// DB returns the database configuration for db.NewManager.
func (c Config) DB() db.Config {
	cfg := db.DefaultConfig()
	cfg.WriterURL = c.WriterDBURL
	cfg.ReaderURL = c.ReaderDBURL
	return cfg
}

// Auth returns the token verification configuration for auth.New.
func (c Config) Auth() auth.Config {
	return auth.Config{
		SecretKey: c.JWTSecretKey,
		Algorithm: c.JWTAlgorithm,
	}
}
