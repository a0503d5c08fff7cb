package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	MySQLHost string `mapstructure:"MYSQL_HOST"`
	MySQLPort string `mapstructure:"MYSQL_PORT"`
	MySQLDB   string `mapstructure:"MYSQL_DB"`
	MySQLUser string `mapstructure:"MYSQL_USER"`
	MySQLPass string `mapstructure:"MYSQL_PASS"`
	// Seconds InnoDB waits for a row lock before aborting the tx.
	MySQLLockWaitSecs int  `mapstructure:"MYSQL_LOCK_WAIT_SECONDS"`
	AutoMigrate       bool `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisPass string `mapstructure:"REDIS_PASSWORD"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	IdempTTLSecs int `mapstructure:"IDEMPOTENCY_TTL_SECONDS"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	JWTTTLMinutes int    `mapstructure:"JWT_TTL_MINUTES"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"APP_PORT":                "8080",
	"MYSQL_HOST":              "mysql",
	"MYSQL_PORT":              "3306",
	"MYSQL_DB":                "lending",
	"MYSQL_USER":              "lending",
	"MYSQL_PASS":              "lending",
	"MYSQL_LOCK_WAIT_SECONDS": 10,
	"DB_AUTO_MIGRATE":         true,
	"REDIS_ADDR":              "redis:6379",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"IDEMPOTENCY_TTL_SECONDS": 300,
	"JWT_SECRET":              "",
	"JWT_TTL_MINUTES":         60,
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "json",
}

// Load reads defaults, then an optional .env file in the working directory,
// then the environment.
func Load() (*Config, error) { return LoadFrom(".") }

// LoadFrom is Load with the .env search path set to dirs.
func LoadFrom(dirs ...string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	// .env is optional, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTLMinutes <= 0 {
		return errors.New("JWT_TTL_MINUTES must be greater than 0")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be greater than 0")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; innodb_lock_wait_timeout bounds a stuck row lock
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
	if c.MySQLLockWaitSecs > 0 {
		dsn += fmt.Sprintf("&innodb_lock_wait_timeout=%d", c.MySQLLockWaitSecs)
	}
	return dsn
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) TokenTTL() time.Duration { return time.Duration(c.JWTTTLMinutes) * time.Minute }
