package cmd

import (
	"os"
	"time"

	"storefront/internal/adapters/out/notification"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// EnvPrefix prefixes every environment variable, e.g. STOREFRONT_HTTP_PORT.
const EnvPrefix = "STOREFRONT"

// Config holds the complete application configuration, loadable from environment
// variables, a .env file or config.yaml.
type Config struct {
	HTTPPort  string `env:"HTTP_PORT" default:"8080" usage:"HTTP listen port"`
	LogLevel  string `default:"info" usage:"debug, info, warn or error"`
	StoreName string `default:"Storefront" usage:"Store name used in notification emails"`
	JWTSecret string `env:"JWT_SECRET" usage:"HMAC secret verifying bearer tokens"`

	DB       DBConfig
	Delivery DeliveryConfig
	Orders   OrdersConfig `env:"ORDER"`
	Notify   NotifyConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
}

type DBConfig struct {
	Host            string        `default:"localhost"`
	Port            string        `default:"5432"`
	User            string        `default:"postgres"`
	Password        string        `default:"postgres"`
	Name            string        `default:"storefront"`
	SslMode         string        `default:"disable"`
	MaxOpenConns    int           `default:"20"`
	MaxIdleConns    int           `default:"5"`
	ConnMaxLifetime time.Duration `default:"30m"`
}

type DeliveryConfig struct {
	HomeCity    string  `default:"Dhaka" usage:"City charged the home rate"`
	HomeRate    float64 `default:"60" usage:"Charge per brand group inside the home city"`
	OutsideRate float64 `default:"120" usage:"Charge per brand group elsewhere"`
}

type OrdersConfig struct {
	TransitionPolicy string `default:"monotonic" usage:"monotonic or freeform"`
	MaxRetries       int    `env:"MAX_TRANSITION_RETRIES" default:"3" usage:"Extra attempts after a lost version race"`
}

type NotifyConfig struct {
	AdminEmail string `usage:"Recipient of admin order notifications"`
	Schedule   string `default:"@every 5s" usage:"Outbox dispatch schedule"`
	BatchSize  int    `default:"50" usage:"Outbox messages per dispatch run"`
}

// SMTPConfig selects the SMTP notifier when Host is set; otherwise emails are only logged.
type SMTPConfig struct {
	Host     string
	Port     int `default:"587"`
	Username string
	Password string
	From     string `default:"no-reply@storefront.local"`
}

// RedisConfig enables Idempotency-Key handling when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration `default:"24h"`
}

// LoadConfig reads .env (when present) into the environment and then loads Config.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	if len(files) == 0 {
		files = []string{"config.yaml"}
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: EnvPrefix,
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required: set STOREFRONT_JWT_SECRET")
	}
	if _, err := c.TransitionPolicy(); err != nil {
		return err
	}
	if _, err := c.DeliveryRates(); err != nil {
		return err
	}
	if c.Notify.BatchSize <= 0 {
		return errors.Errorf("notify batch size must be positive, got %d", c.Notify.BatchSize)
	}
	return nil
}

func (c Config) DSN() string {
	return postgres.DSN(c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SslMode)
}

func (c Config) Pool() postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
	}
}

func (c Config) TransitionPolicy() (order.TransitionPolicy, error) {
	return order.ParseTransitionPolicy(c.Orders.TransitionPolicy)
}

func (c Config) DeliveryRates() (services.DeliveryRates, error) {
	home, err := kernel.NewMoney(decimal.NewFromFloat(c.Delivery.HomeRate))
	if err != nil {
		return services.DeliveryRates{}, errors.Wrap(err, "home rate")
	}
	outside, err := kernel.NewMoney(decimal.NewFromFloat(c.Delivery.OutsideRate))
	if err != nil {
		return services.DeliveryRates{}, errors.Wrap(err, "outside rate")
	}
	return services.DeliveryRates{
		HomeCity:    c.Delivery.HomeCity,
		HomeRate:    home,
		OutsideRate: outside,
	}, nil
}

func (c Config) SMTPNotifierConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
	}
}

