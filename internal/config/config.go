package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"
)

// Placeholder values shipped in the sample storefront config.
const (
	placeholderDomain = "YOUR-STORE.myshopify.com"
	placeholderToken  = "YOUR-STOREFRONT-ACCESS-TOKEN"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Storage struct {
	Backend string        `yaml:"backend" env:"STORAGE_BACKEND" env-default:"redis"`
	CartTTL time.Duration `yaml:"cart_ttl" env:"CART_TTL" env-default:"168h"`
}

type Storefront struct {
	Domain          string        `yaml:"domain" env:"STOREFRONT_DOMAIN"`
	AccessToken     string        `yaml:"access_token" env:"STOREFRONT_ACCESS_TOKEN"`
	CollectionID    string        `yaml:"collection_id" env:"STOREFRONT_COLLECTION_ID"`
	ProductsPerPage int           `yaml:"products_per_page" env:"STOREFRONT_PRODUCTS_PER_PAGE" env-default:"8"`
	Timeout         time.Duration `yaml:"timeout" env:"STOREFRONT_TIMEOUT" env-default:"10s"`
	NewProductDays  int           `yaml:"new_product_days" env:"STOREFRONT_NEW_PRODUCT_DAYS" env-default:"30"`
}

type CartConfig struct {
	MaxQuantity    int    `yaml:"max_quantity" env:"CART_MAX_QUANTITY" env-default:"10"`
	CurrencySymbol string `yaml:"currency_symbol" env:"CART_CURRENCY_SYMBOL" env-default:"$"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"10m"`
	CatalogTTL time.Duration `yaml:"catalog_ttl" env:"CACHE_CATALOG_TTL" env-default:"1h"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"30"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Security struct {
	SessionKey         string `yaml:"SESSION_KEY" env:"SESSION_KEY" env-required:"true"`
	SessionExpiryHours int    `yaml:"SESSION_EXPIRY_HOURS" env:"SESSION_EXPIRY_HOURS" env-default:"168"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"merch-cart"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
}

type Feed struct {
	IdleTTL time.Duration `yaml:"idle_ttl" env:"FEED_IDLE_TTL" env-default:"30m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Storage      Storage      `yaml:"storage"`
	Storefront   Storefront   `yaml:"storefront"`
	Cart         CartConfig   `yaml:"cart"`
	Cache        CacheConfig  `yaml:"cache"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Otel         Otel         `yaml:"otel"`
	Feed         Feed         `yaml:"feed"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {

	switch c.Storage.Backend {
	case StorageBackendRedis:
	case StorageBackendPostgres:
		if c.Database.User == "" || c.Database.Name == "" {
			return errors.New("postgres storage backend requires PG_USER and PG_DBNAME")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Cart.MaxQuantity < 1 {
		return fmt.Errorf("cart max_quantity must be at least 1, got %d", c.Cart.MaxQuantity)
	}

	if c.Storefront.ProductsPerPage < 1 {
		return fmt.Errorf("storefront products_per_page must be at least 1, got %d", c.Storefront.ProductsPerPage)
	}

	return nil
}

// Configured reports whether real storefront credentials are present.
func (s *Storefront) Configured() bool {
	domain := strings.TrimSpace(s.Domain)
	token := strings.TrimSpace(s.AccessToken)

	return domain != "" && token != "" && domain != placeholderDomain && token != placeholderToken
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
