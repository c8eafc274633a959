package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DevJWTSecret is only accepted when APP_ENV is dev.
const DevJWTSecret = "your-secret-key-change-this-in-prod"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET_KEY must be set outside development")

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Stripe   StripeConfig
	Square   SquareConfig
	Store    StoreConfig
}

type ServerConfig struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"dev"`
	HTTPPort        string        `envconfig:"HTTP_PORT" default:":8080"`
	GRPCPort        string        `envconfig:"GRPC_PORT" default:":8082"`
	RequestTimeout  time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"debug"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"console"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
}

type PostgresConfig struct {
	Host            string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port            string `envconfig:"POSTGRES_PORT" default:"5433"`
	User            string `envconfig:"POSTGRES_USER" default:"omnipos"`
	Password        string `envconfig:"POSTGRES_PASSWORD" default:"omnipos"`
	DBName          string `envconfig:"POSTGRES_DB" default:"omnipos_storefront"`
	SSLMode         string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int    `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"300"`
	ConnMaxIdleTime int    `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"60"`
	AutoMigrate     bool   `envconfig:"POSTGRES_AUTO_MIGRATE" default:"true"`
}

// JWTConfig holds the signing secret shared with the hosted auth backend.
type JWTConfig struct {
	SecretKey string `envconfig:"JWT_SECRET_KEY" default:"your-secret-key-change-this-in-prod"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// KafkaConfig: an empty broker list disables publishing and the listener.
type KafkaConfig struct {
	Brokers        []string      `envconfig:"KAFKA_BROKERS" default:""`
	Topic          string        `envconfig:"KAFKA_TOPIC_ORDERS" default:"storefront.orders.events"`
	GroupID        string        `envconfig:"KAFKA_GROUP_CATALOG" default:"storefront-catalog"`
	PublishTimeout time.Duration `envconfig:"KAFKA_PUBLISH_TIMEOUT" default:"3s"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES" default:"http://localhost:9200"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME" default:""`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD" default:""`
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" default:""`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
}

type SquareConfig struct {
	AccessToken string        `envconfig:"SQUARE_ACCESS_TOKEN" default:""`
	LocationID  string        `envconfig:"SQUARE_LOCATION_ID" default:""`
	BaseURL     string        `envconfig:"SQUARE_BASE_URL" default:"https://connect.squareupsandbox.com"`
	Timeout     time.Duration `envconfig:"SQUARE_TIMEOUT" default:"15s"`
}

// StoreConfig carries the pricing rules of the shop. Amounts are in pence.
type StoreConfig struct {
	Currency              string        `envconfig:"STORE_CURRENCY" default:"GBP"`
	FreeShippingThreshold int64         `envconfig:"STORE_FREE_SHIPPING_THRESHOLD" default:"5000"`
	ShippingFee           int64         `envconfig:"STORE_SHIPPING_FEE" default:"499"`
	PencePerLoyaltyPoint  int64         `envconfig:"STORE_PENCE_PER_LOYALTY_POINT" default:"100"`
	DefaultCountry        string        `envconfig:"STORE_DEFAULT_COUNTRY" default:"United Kingdom"`
	CartTTL               time.Duration `envconfig:"STORE_CART_TTL" default:"168h"`
	PublicURL             string        `envconfig:"STORE_PUBLIC_URL" default:"http://localhost:5173"`
}

// LoadEnv reads every section with an empty prefix so the variable names
// are exactly the ones in the struct tags (no SERVER_ / POSTGRES_ nesting).
func LoadEnv() (*Config, error) {
	var cfg Config
	sections := []interface{}{
		&cfg.Server, &cfg.Logger, &cfg.Postgres, &cfg.JWT, &cfg.Redis,
		&cfg.Kafka, &cfg.Elastic, &cfg.Stripe, &cfg.Square, &cfg.Store,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate refuses to run a non-dev environment with the built-in JWT secret.
func (c *Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.JWT.SecretKey == "" || c.JWT.SecretKey == DevJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}
