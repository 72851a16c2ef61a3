package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Gateway drivers understood by the composition root.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Gateway holds the hosted data platform configuration.
	Gateway GatewayConfig `mapstructure:",squash"`

	// Sync holds the list synchronization settings.
	Sync SyncConfig `mapstructure:",squash"`

	// Postal holds the postal-code lookup settings.
	Postal PostalConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// GatewayConfig holds the endpoint and credentials of the hosted gateway.
type GatewayConfig struct {
	// URL is the base URL of the hosted project (REST and auth live under it).
	URL string `mapstructure:"GATEWAY_URL" required:"true"`
	// Key is the public access key sent with every request.
	Key string `mapstructure:"GATEWAY_KEY" required:"true"`
	// Driver selects the gateway implementation: "rest" or "postgres".
	Driver string `mapstructure:"GATEWAY_DRIVER" default:"rest"`
	// Timeout bounds every gateway call.
	Timeout time.Duration `mapstructure:"GATEWAY_TIMEOUT" default:"10s"`
	// DatabaseURL is the connection string used by the postgres driver.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
}

// SyncConfig holds the delivery list synchronization settings.
type SyncConfig struct {
	// RefreshInterval is the polling period of the delivery list.
	RefreshInterval time.Duration `mapstructure:"REFRESH_INTERVAL" default:"5s"`
	// StrictDispatch makes dispatch only succeed on still-pending deliveries.
	StrictDispatch bool `mapstructure:"STRICT_DISPATCH" default:"false"`
}

// PostalConfig holds the postal-code lookup settings.
type PostalConfig struct {
	// URL is the base URL of the ViaCEP compatible service.
	URL string `mapstructure:"POSTAL_URL" default:"https://viacep.com.br"`
	// CacheTTL is how long a resolved postal code stays cached.
	CacheTTL time.Duration `mapstructure:"POSTAL_CACHE_TTL" default:"24h"`
	// RedisURL enables the lookup cache when set.
	RedisURL string `mapstructure:"REDIS_URL"`
}

// ProxyConfig holds the outbound proxy used for gateway and postal calls.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOST"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks rules that depend on more than one field.
func (c *AppConfig) validate() error {
	c.Gateway.Driver = strings.ToLower(strings.TrimSpace(c.Gateway.Driver))
	c.Gateway.URL = strings.TrimRight(c.Gateway.URL, "/")
	c.Postal.URL = strings.TrimRight(c.Postal.URL, "/")

	switch c.Gateway.Driver {
	case DriverREST:
	case DriverPostgres:
		if c.Gateway.DatabaseURL == "" {
			return fmt.Errorf("missing required configuration: DATABASE_URL (GATEWAY_DRIVER=%s)", DriverPostgres)
		}
	default:
		return fmt.Errorf("invalid configuration: GATEWAY_DRIVER must be %q or %q, got %q", DriverREST, DriverPostgres, c.Gateway.Driver)
	}

	if c.Sync.RefreshInterval <= 0 {
		return fmt.Errorf("invalid configuration: REFRESH_INTERVAL must be positive")
	}
	return nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
