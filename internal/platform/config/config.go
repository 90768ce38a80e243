package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RateLimit          string   // ulule formatted rate, e.g. "100-M"
	AuthRateLimit      string   // applied to login and register
	CORSAllowedOrigins []string // empty means all origins

	PosthogAPIKey   string
	PosthogEndpoint string

	BudgetPolicy domain.BudgetPolicy
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "finance_tracker.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "finance-tracker")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("BUDGET_LIMIT_DEFAULT", "")
	v.SetDefault("SAVINGS_TARGET_RATE", "")
	for _, cat := range domain.ExpenseCategories {
		v.SetDefault(budgetKey(cat), "")
	}
}

func budgetKey(c domain.Category) string {
	return "BUDGET_LIMIT_" + strings.ToUpper(string(c))
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:     v.GetString("PGSQL_URL"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		AuthRateLimit:   v.GetString("AUTH_RATE_LIMIT"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when DB_DRIVER is %s", DriverPostgres)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when DB_DRIVER is %s", DriverSQLite)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER '%s'", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
		cfg.JWTSecret = defaultJWTSecret
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiry <= 0 {
		jwtExpiry = time.Hour
		slog.Warn("Invalid value for JWT_EXPIRY_DURATION, using default",
			slog.String("value", jwtExpiryStr), slog.Duration("default", jwtExpiry))
	}
	cfg.JWTExpiryDuration = jwtExpiry

	if origins := strings.TrimSpace(v.GetString("CORS_ALLOWED_ORIGINS")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	policy, err := budgetPolicy(v)
	if err != nil {
		return nil, err
	}
	cfg.BudgetPolicy = policy

	return cfg, nil
}

// budgetPolicy starts from the built-in policy and applies every BUDGET_LIMIT_* override.
func budgetPolicy(v *viper.Viper) (domain.BudgetPolicy, error) {
	policy := domain.DefaultBudgetPolicy()

	for _, cat := range domain.ExpenseCategories {
		f, ok, err := fraction(v, budgetKey(cat))
		if err != nil {
			return policy, err
		}
		if ok {
			policy = policy.WithLimit(cat, f)
		}
	}

	if f, ok, err := fraction(v, "BUDGET_LIMIT_DEFAULT"); err != nil {
		return policy, err
	} else if ok && f.IsPositive() {
		policy.Default = f
	}

	if f, ok, err := fraction(v, "SAVINGS_TARGET_RATE"); err != nil {
		return policy, err
	} else if ok {
		policy.SavingsTargetRate = f
	}

	return policy, nil
}

// fraction reads a decimal in [0, 1]. ok is false when the key is unset.
func fraction(v *viper.Viper, key string) (decimal.Decimal, bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return decimal.Zero, false, nil
	}
	f, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("invalid value for %s ('%s'): %w", key, raw, err)
	}
	if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, false, fmt.Errorf("%s must be between 0 and 1, got %s", key, raw)
	}
	return f, true, nil
}
