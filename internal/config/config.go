package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultAirportsURL = "https://raw.githubusercontent.com/mwgg/Airports/refs/heads/master/airports.json"

type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Solar    SolarConfig    `yaml:"solar"`
	Airports AirportsConfig `yaml:"airports"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Port           int      `yaml:"port"`
	CORSOrigins    []string `yaml:"cors_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlite_path"`
}

type CacheConfig struct {
	Backend      string        `yaml:"backend"`
	ReferenceTTL time.Duration `yaml:"reference_ttl"`
	SolarTTL     time.Duration `yaml:"solar_ttl"`
	Redis        RedisConfig   `yaml:"redis"`
	WarmAirports []string      `yaml:"warm_airports"`
	WarmInterval time.Duration `yaml:"warm_interval"`
}

type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type SolarConfig struct {
	Algorithm string `yaml:"algorithm"`
}

type AirportsConfig struct {
	SourceURL    string `yaml:"source_url"`
	SyncSchedule string `yaml:"sync_schedule"`
	SyncOnStart  bool   `yaml:"sync_on_start"`
}

type AuthConfig struct {
	AdminJWTSecret string `yaml:"admin_jwt_secret"`
}

// Load reads .env, then the YAML file named by CONFIG_FILE (default
// config.yaml, optional unless CONFIG_FILE is set explicitly), then applies
// environment overrides and defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// running on env + defaults only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.AppEnv, "APP_ENV")
	setInt(&c.HTTP.Port, "HTTP_PORT")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "PG_HOST")
	setString(&c.Database.Port, "PG_PORT")
	setString(&c.Database.User, "PG_USER")
	setString(&c.Database.Password, "PG_PASSWORD")
	setString(&c.Database.Name, "PG_DB")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")

	setString(&c.Cache.Backend, "CACHE_BACKEND")
	setString(&c.Cache.Redis.Host, "REDIS_HOST")
	setString(&c.Cache.Redis.Port, "REDIS_PORT")
	setString(&c.Cache.Redis.Password, "REDIS_PASSWORD")
	setList(&c.Cache.WarmAirports, "WARM_AIRPORTS")

	setString(&c.Solar.Algorithm, "SOLAR_ALGORITHM")

	setString(&c.Airports.SourceURL, "AIRPORTS_SOURCE_URL")
	setString(&c.Airports.SyncSchedule, "AIRPORT_SYNC_SCHEDULE")

	setString(&c.Auth.AdminJWTSecret, "ADMIN_JWT_SECRET")
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"https://*", "http://localhost:8081"}
	}
	if c.HTTP.RateLimitRPS == 0 {
		c.HTTP.RateLimitRPS = 5
	}
	if c.HTTP.RateLimitBurst == 0 {
		c.HTTP.RateLimitBurst = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "airclock.db"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.ReferenceTTL == 0 {
		c.Cache.ReferenceTTL = 30 * time.Minute
	}
	if c.Cache.SolarTTL == 0 {
		c.Cache.SolarTTL = 12 * time.Hour
	}
	if c.Cache.WarmInterval == 0 {
		c.Cache.WarmInterval = 30 * time.Minute
	}
	if c.Cache.Redis.Host == "" {
		c.Cache.Redis.Host = "localhost"
	}
	if c.Cache.Redis.Port == "" {
		c.Cache.Redis.Port = "6379"
	}
	if c.Cache.Redis.KeyPrefix == "" {
		c.Cache.Redis.KeyPrefix = "airclock:"
	}
	if c.Solar.Algorithm == "" {
		c.Solar.Algorithm = "suncalc"
	}
	if c.Airports.SourceURL == "" {
		c.Airports.SourceURL = defaultAirportsURL
	}
	if c.Airports.SyncSchedule == "" {
		c.Airports.SyncSchedule = "0 0 4 * * *" // daily at 04:00
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q (postgres or sqlite)", c.Database.Driver)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache backend %q (memory or redis)", c.Cache.Backend)
	}
	if c.Cache.ReferenceTTL < 0 || c.Cache.SolarTTL < 0 || c.Cache.WarmInterval < 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.AppEnv == "production" && c.Auth.AdminJWTSecret == "" {
		return fmt.Errorf("admin JWT secret is required in production (set ADMIN_JWT_SECRET or auth.admin_jwt_secret)")
	}
	return nil
}

// PostgresDSN builds the connection string used by both sqlx and gorm.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// setList reads a comma-separated list, dropping empty items
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	items := make([]string, 0)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}
