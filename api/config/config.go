package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	BraintreeEnvironment string
	MerchantID           string
	PublicKey            string
	PrivateKey           string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server ports
	HTTPPort string
	GRPCPort string
	// Logging
	LogLevel  string
	LogFormat string
	// StatusMode selects how failure kinds map onto HTTP statuses (see StatusModeLegacy).
	StatusMode string
	// GatewayTimeout bounds each Braintree call; zero keeps the SDK default.
	GatewayTimeout time.Duration
}

// setting binds one Config string field to its viper key and environment variable.
type setting struct {
	name     string
	key      string
	envVar   string
	display  string
	required bool
	def      string
}

var settings = []setting{
	{"BraintreeEnvironment", "braintree_environment", "BRAINTREE_ENVIRONMENT", "Braintree Environment", false, EnvSandbox},
	{"MerchantID", "merchant_id", "MF_MERCHANT_ID", "Braintree Merchant ID", true, ""},
	{"PublicKey", "public_key", "MF_PUBLIC_KEY", "Braintree Public Key", true, ""},
	{"PrivateKey", "private_key", "MF_PRIVATE_KEY", "Braintree Private Key", true, ""},
	// Optional integration base URL for remote tests
	{"IntegrationBaseURL", "integration_base_url", "INTEGRATION_BASE_URL", "Integration Base URL", false, ""},
	// Optional server ports
	{"HTTPPort", "port", "PORT", "HTTP Port", false, "8080"},
	{"GRPCPort", "grpc_port", "GRPC_PORT", "gRPC Port", false, "50051"},
	{"LogLevel", "log_level", "LOG_LEVEL", "Log Level", false, "info"},
	{"LogFormat", "log_format", "LOG_FORMAT", "Log Format", false, "text"},
	{"StatusMode", "status_mode", "STATUS_MODE", "Status Mode", false, StatusModeLegacy},
}

// LoadConfig loads configuration from .env and environment variables
func LoadConfig() (*Config, error) {
	return Load(viper.New())
}

// Load reads configuration through v, so callers can bind command-line flags to the
// same keys before loading. Precedence: flags, environment, .env, defaults.
func Load(v *viper.Viper) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	config := &Config{}
	for _, s := range settings {
		if err := v.BindEnv(s.key, s.envVar); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", s.envVar, err)
		}
		if s.def != "" {
			v.SetDefault(s.key, s.def)
		}
		value := strings.TrimSpace(v.GetString(s.key))
		if s.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s (%s)", s.display, s.envVar)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(s.name)
		configField.SetString(value)
	}

	if err := v.BindEnv("gateway_timeout", "GATEWAY_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind GATEWAY_TIMEOUT: %w", err)
	}
	if raw := v.GetString("gateway_timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT %q: %w", raw, err)
		}
		config.GatewayTimeout = d
	}

	config.StatusMode = strings.ToLower(config.StatusMode)
	if config.StatusMode != StatusModeLegacy && config.StatusMode != StatusModeDifferentiated {
		return nil, fmt.Errorf("invalid STATUS_MODE %q: want %s or %s", config.StatusMode, StatusModeLegacy, StatusModeDifferentiated)
	}

	return config, nil
}

// loadDotEnv loads the first .env file found in the current directory or its parents.
// Variables already present in the environment are left untouched.
func loadDotEnv() error {
	currentDir, _ := os.Getwd()
	for currentDir != "/" && currentDir != "." {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("failed to load .env file: %v", err)
			}
			return nil
		}
		currentDir = filepath.Dir(currentDir)
	}
	return nil
}
