package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL  time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"10m"`
	BusinessTTL time.Duration `yaml:"BUSINESS_TTL" env:"CACHE_BUSINESS_TTL" env-default:"5m"`
}

// CatalogConfig carries the storefront listing knobs that used to be
// hardcoded literals: page clamps, the default search locale and the
// slugs whose products fall back to the primary description when a
// localized one is missing.
type CatalogConfig struct {
	DefaultPageSize          int      `yaml:"DEFAULT_PAGE_SIZE" env:"CATALOG_DEFAULT_PAGE_SIZE" env-default:"50"`
	MaxPageSize              int      `yaml:"MAX_PAGE_SIZE" env:"CATALOG_MAX_PAGE_SIZE" env-default:"100"`
	DefaultSearchLocale      string   `yaml:"DEFAULT_SEARCH_LOCALE" env:"CATALOG_DEFAULT_SEARCH_LOCALE" env-default:"sq"`
	DescriptionFallbackSlugs []string `yaml:"DESCRIPTION_FALLBACK_SLUGS" env:"CATALOG_DESCRIPTION_FALLBACK_SLUGS" env-default:""`
}

type SendGrid struct {
	APIKey     string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail  string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"alerts@waveorder.app"`
	FromName   string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"WaveOrder"`
	AlertEmail string `yaml:"SENDGRID_ALERT_EMAIL" env:"SENDGRID_ALERT_EMAIL" env-default:""`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Database     Database      `yaml:"database"`
	RedisConnect RedisConnect  `yaml:"redis"`
	Cache        CacheConfig   `yaml:"cache"`
	Catalog      CatalogConfig `yaml:"catalog"`
	SendGrid     SendGrid      `yaml:"sendgrid"`
}

func MustLoad() *Config {

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

// LoadConfigFromPath reads the config from the given YAML file, falling
// back to the environment when the path is empty. Environment variables
// override file values either way.
func LoadConfigFromPath(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("can not read config file: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read config from environment: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
