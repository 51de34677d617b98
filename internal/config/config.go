package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	LLM      LLMConfig
	CORS     CORSConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	FrontendURL string
	BodyLimit   int
}

type DatabaseConfig struct {
	// URL, when set, replaces the individual connection fields.
	URL string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate bool
}

type JWTConfig struct {
	Secret           string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	ResetExpiresIn   time.Duration
}

type SecurityConfig struct {
	BcryptCost int
	OTPTTL     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

type CORSConfig struct {
	AllowedOrigins []string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var errInvalidEnv = errors.New("invalid environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		FrontendURL: opt("FRONTEND_URL", "http://localhost:3000"),
		BodyLimit:   optInt("HTTP_BODY_LIMIT", 11*1024*1024),
	}

	dbURL := opt("DATABASE_URL", "")
	dbField := req
	if dbURL != "" {
		dbField = func(key string) string { return opt(key, "") }
	}
	cfg.Database = DatabaseConfig{
		URL:        dbURL,
		DBHost:     dbField("DB_HOST"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     dbField("DB_NAME"),
		DBUser:     dbField("DB_USER"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		AutoMigrate: optBool("DB_AUTO_MIGRATE", true),
	}

	cfg.JWT = JWTConfig{
		Secret:           req("JWT_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		ResetExpiresIn:   optDuration("JWT_RESET_EXPIRES_IN", 10*time.Minute),
	}

	cfg.Security = SecurityConfig{
		BcryptCost: optInt("BCRYPT_COST", 10),
		OTPTTL:     optDuration("OTP_TTL", 10*time.Minute),
	}

	cfg.SMTP = SMTPConfig{
		Host:     opt("SMTP_HOST", ""),
		Port:     optInt("SMTP_PORT", 587),
		Username: opt("SMTP_USERNAME", ""),
		Password: opt("SMTP_PASSWORD", ""),
		From:     opt("SMTP_FROM", "no-reply@next-hire.local"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.LLM = LLMConfig{
		Provider: strings.ToLower(opt("LLM_PROVIDER", "googleai")),
		APIKey:   opt("LLM_API_KEY", ""),
		Model:    opt("LLM_MODEL", "gemini-2.0-flash"),
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(opt("CORS_ALLOWED_ORIGINS", cfg.App.FrontendURL)),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
