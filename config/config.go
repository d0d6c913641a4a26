package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// SlowRequestThreshold is the latency above which the timing
		// middleware logs a slow-request warning.
		SlowRequestThreshold time.Duration `json:"slowRequestThreshold" yaml:"slowRequestThreshold"`
		Timeouts             struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Cache configuration for the analytics response cache
	Cache *CacheConfig `json:"cache" yaml:"cache"`

	// RateLimit configuration for the fixed-window request limiter
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// Fraud configuration for the fraud scoring engine
	Fraud *FraudConfig `json:"fraud" yaml:"fraud"`

	// Analytics configuration for the customer analytics engine
	Analytics *AnalyticsConfig `json:"analytics" yaml:"analytics"`

	// Inventory configuration for the inventory forecast engine
	Inventory *InventoryConfig `json:"inventory" yaml:"inventory"`

	// Firebase configuration for critical alert push notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for alert event broadcasting
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// AuthConfig defines authentication-related configuration for the ops
// dashboard. Operator accounts are provisioned statically; there is no
// storefront customer login in this service.
type AuthConfig struct {
	BcryptCost int               `json:"bcryptCost" yaml:"bcryptCost"`
	Operators  []OperatorAccount `json:"operators" yaml:"operators"`
}

// OperatorAccount is one statically provisioned dashboard account.
type OperatorAccount struct {
	Email        string   `json:"email" yaml:"email"`
	PasswordHash string   `json:"passwordHash" yaml:"passwordHash"` // bcrypt hash, never plaintext
	Roles        []string `json:"roles" yaml:"roles"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CacheConfig defines the response cache behavior.
type CacheConfig struct {
	// DefaultTTL applies to cached responses without a route-specific TTL.
	DefaultTTL time.Duration `json:"defaultTtl" yaml:"defaultTtl"`

	// AnalyticsTTL applies to customer analytics responses.
	AnalyticsTTL time.Duration `json:"analyticsTtl" yaml:"analyticsTtl"`

	// InventoryTTL applies to inventory forecast responses.
	InventoryTTL time.Duration `json:"inventoryTtl" yaml:"inventoryTtl"`

	// SweepInterval is how often the janitor removes expired entries.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
}

// RateLimitConfig defines the fixed-window rate limiter behavior.
type RateLimitConfig struct {
	// Window is the fixed window length.
	Window time.Duration `json:"window" yaml:"window"`

	// MaxRequests is the number of admissions per window per client identity.
	MaxRequests int `json:"maxRequests" yaml:"maxRequests"`

	// SweepInterval is how often stale per-client windows are removed.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
}

// FraudConfig defines fraud scoring engine configuration.
type FraudConfig struct {
	// VelocityWindow is the trailing window for the velocity check.
	VelocityWindow time.Duration `json:"velocityWindow" yaml:"velocityWindow"`

	// VelocityThreshold is the transaction count at which the velocity flag fires.
	VelocityThreshold int `json:"velocityThreshold" yaml:"velocityThreshold"`

	// OpsDeviceTokens are FCM device tokens paged on critical fraud alerts.
	OpsDeviceTokens []string `json:"opsDeviceTokens" yaml:"opsDeviceTokens"`
}

// AnalyticsConfig defines customer analytics engine configuration.
type AnalyticsConfig struct {
	// CLVHorizonMonths is the assumed customer lifespan for CLV projection.
	CLVHorizonMonths int `json:"clvHorizonMonths" yaml:"clvHorizonMonths"`

	// TopCustomerCount bounds the top-customer list in the RFM report.
	TopCustomerCount int `json:"topCustomerCount" yaml:"topCustomerCount"`

	// DefaultRecommendationLimit applies when a caller passes no limit.
	DefaultRecommendationLimit int `json:"defaultRecommendationLimit" yaml:"defaultRecommendationLimit"`
}

// InventoryConfig defines inventory forecast engine configuration.
type InventoryConfig struct {
	// LowStockThreshold selects reorder candidates (stock at or below it).
	LowStockThreshold int `json:"lowStockThreshold" yaml:"lowStockThreshold"`

	// DefaultLeadTimeDays is assumed when a product has no supplier.
	DefaultLeadTimeDays int `json:"defaultLeadTimeDays" yaml:"defaultLeadTimeDays"`

	// SafetyBufferDays is added to lead time for the reorder point.
	SafetyBufferDays int `json:"safetyBufferDays" yaml:"safetyBufferDays"`

	// SalesWindowDays is the trailing window used to estimate daily sales.
	SalesWindowDays int `json:"salesWindowDays" yaml:"salesWindowDays"`

	// DefaultForecastDays is the projection horizon when a caller passes none.
	DefaultForecastDays int `json:"defaultForecastDays" yaml:"defaultForecastDays"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// PubSubConfig defines Pub/Sub configuration for alert event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
