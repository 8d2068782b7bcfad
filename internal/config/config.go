package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberia-api/internal/validators"
)

type Config struct {
	GoEnv      string
	ServerPort string

	DBUrl             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL      string
	StatsCacheTTL time.Duration

	LogLevel    string
	Timezone    string
	CORSOrigins []string
	BcryptCost  int

	// First administrator, created at startup when AdminEmail is set and
	// not yet registered.
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// malformed numeric or duration variables, reported by Validate
	parseErrs []error
}

// Load reads .env.<GO_ENV> (falling back to .env) and then the process
// environment. Missing env files are fine: in containers everything comes
// from the environment.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if err := godotenv.Load(fmt.Sprintf(".env.%s", env)); err != nil {
		_ = godotenv.Load()
	}

	cfg := &Config{
		GoEnv:      getEnv("GO_ENV", "development"),
		ServerPort: getEnv("PORT", "8080"),
		DBUrl:      getEnv("DATABASE_URL", ""),
		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		RedisURL:   getEnv("REDIS_URL", ""),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrador"),
	}

	cfg.DBMaxOpenConns = cfg.getEnvInt("DB_MAX_OPEN_CONNS", 10)
	cfg.DBMaxIdleConns = cfg.getEnvInt("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLifetime = cfg.getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	cfg.DBConnMaxIdleTime = cfg.getEnvDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute)
	cfg.JWTTTL = cfg.getEnvDuration("JWT_TTL", 24*time.Hour)
	cfg.StatsCacheTTL = cfg.getEnvDuration("STATS_CACHE_TTL", time.Minute)
	cfg.BcryptCost = cfg.getEnvInt("BCRYPT_COST", bcrypt.DefaultCost)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)

	if c.DBUrl == "" && !c.IsTest() {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "changeme") {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.StatsCacheTTL < 0 {
		errs = append(errs, errors.New("STATS_CACHE_TTL must not be negative"))
	}
	if c.DBMaxOpenConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
	}
	if c.DBMaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must not be negative"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.AdminEmail != "" {
		if !validators.IsValidEmail(validators.NormalizeEmail(c.AdminEmail)) {
			errs = append(errs, fmt.Errorf("invalid ADMIN_EMAIL %q", c.AdminEmail))
		}
		if n := len(c.AdminPassword); n < 6 || n > validators.MaxPasswordBytes {
			errs = append(errs, errors.New("ADMIN_PASSWORD must be 6 to 72 bytes"))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (c *Config) getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}
	return d
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
