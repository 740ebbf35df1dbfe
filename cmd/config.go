package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"paquexpress/internal/jobs"
	"paquexpress/internal/pkg/errs"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultHTTPPort           = "8000"
	DefaultDBHost             = "localhost"
	DefaultDBPort             = "5432"
	DefaultDBUser             = "postgres"
	DefaultDBName             = "paquexpress_db"
	DefaultDBSslMode          = "disable"
	DefaultDBPoolSize         = 5
	DefaultJWTAlgorithm       = "HS256"
	DefaultAccessTokenMinutes = 30
	DefaultLogLevel           = "info"
	DefaultBcryptCost         = bcrypt.DefaultCost
)

var supportedJWTAlgorithms = []string{"HS256", "HS384", "HS512"}

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBPoolSize        int
	JWTSecret         string
	JWTAlgorithm      string
	AccessTokenTTL    time.Duration
	LogLevel          string
	PoolStatsSchedule string
	BcryptCost        int
}

// LoadConfig reads an optional .env file into the process environment and
// builds the Config from it. A missing .env file is not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults. It fails only
// on values that cannot be parsed; call Validate for the rules.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	lookup := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	poolSize, poolErr := parseInt("DB_POOL_SIZE", lookup("DB_POOL_SIZE", strconv.Itoa(DefaultDBPoolSize)))
	ttlMinutes, ttlErr := parseInt(
		"ACCESS_TOKEN_EXPIRE_MINUTES",
		lookup("ACCESS_TOKEN_EXPIRE_MINUTES", strconv.Itoa(DefaultAccessTokenMinutes)),
	)
	bcryptCost, costErr := parseInt("BCRYPT_COST", lookup("BCRYPT_COST", strconv.Itoa(DefaultBcryptCost)))
	if err := errors.Join(poolErr, ttlErr, costErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:          lookup("HTTP_PORT", DefaultHTTPPort),
		DBHost:            lookup("DB_HOST", DefaultDBHost),
		DBPort:            lookup("DB_PORT", DefaultDBPort),
		DBUser:            lookup("DB_USER", DefaultDBUser),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            lookup("DB_NAME", DefaultDBName),
		DBSslMode:         lookup("DB_SSLMODE", DefaultDBSslMode),
		DBPoolSize:        poolSize,
		JWTSecret:         getenv("JWT_SECRET"),
		JWTAlgorithm:      strings.ToUpper(lookup("JWT_ALGORITHM", DefaultJWTAlgorithm)),
		AccessTokenTTL:    time.Duration(ttlMinutes) * time.Minute,
		LogLevel:          strings.ToLower(lookup("LOG_LEVEL", DefaultLogLevel)),
		PoolStatsSchedule: lookup("POOL_STATS_SCHEDULE", jobs.DefaultPoolStatsSchedule),
		BcryptCost:        bcryptCost,
	}, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error

	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if !isSupportedAlgorithm(c.JWTAlgorithm) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"JWT_ALGORITHM",
			fmt.Errorf("%q is not one of %s", c.JWTAlgorithm, strings.Join(supportedJWTAlgorithms, ", ")),
		))
	}
	if c.DBPoolSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DB_POOL_SIZE", c.DBPoolSize, 1, "unbounded"))
	}
	if c.AccessTokenTTL <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"ACCESS_TOKEN_EXPIRE_MINUTES", c.AccessTokenTTL, time.Minute, "unbounded",
		))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"BCRYPT_COST", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost,
		))
	}
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("HTTP_PORT", c.HTTPPort, 1, 65535))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

func isSupportedAlgorithm(algorithm string) bool {
	for _, supported := range supportedJWTAlgorithms {
		if algorithm == supported {
			return true
		}
	}
	return false
}

// DSN returns the PostgreSQL connection URL.
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

// SlogLevel parses LogLevel (debug, info, warn or error).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

// HTTPAddress is the listen address of the API server.
func (c Config) HTTPAddress() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}
