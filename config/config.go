// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath     = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// Config is the fully resolved application configuration. It is built
// once at startup and handed by reference to every component that
// needs it, so nothing reads viper after Load returns.
type Config struct {
	LogLevel string

	UsersPort int
	TasksPort int

	CORSOrigins []string
	RateLimit   int

	DBDriver string
	DBDSN    string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	RedisAddr string

	MailHost     string
	MailPort     int
	MailSender   string
	MailPassword string
}

// Load prepares everything config-related so that the services can
// start working. It returns an error if something is critically wrong
// and the application can't run because of that.
func Load() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("users.port", "users_port")
	v.BindEnv("tasks.port", "tasks_port")

	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.access_ttl_min", "jwt_access_ttl_min")
	v.BindEnv("jwt.refresh_ttl_hours", "jwt_refresh_ttl_hours")

	v.BindEnv("redis.addr", "redis_addr")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("users.port", 8080)
	v.SetDefault("tasks.port", 8081)

	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("jwt.access_ttl_min", 30)
	v.SetDefault("jwt.refresh_ttl_hours", 24*7)

	v.SetDefault("mail.port", 587)

	v.SetDefault("security.rate_limit", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return nil, errors.New("invalid log level provided")
	}

	if v.GetInt("users.port") <= 0 || v.GetInt("tasks.port") <= 0 {
		return nil, errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return nil, errors.New("invalid db driver provided, must be sqlite or postgres")
	}

	if v.GetString("jwt.secret") == "" {
		return nil, errors.New("jwt.secret is missing, set it in config.toml or the JWT_SECRET environment variable")
	}

	if v.GetInt("jwt.access_ttl_min") <= 0 || v.GetInt("jwt.refresh_ttl_hours") <= 0 {
		return nil, errors.New("token lifetimes must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return nil, errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("mail.sender") == "" {
		zap.L().Warn("No mail.sender configured, outgoing mail will fail until it is set")
	}

	return &Config{
		LogLevel:     v.GetString("app.log_level"),
		UsersPort:    v.GetInt("users.port"),
		TasksPort:    v.GetInt("tasks.port"),
		CORSOrigins:  v.GetStringSlice("host.cors_origins"),
		RateLimit:    v.GetInt("security.rate_limit"),
		DBDriver:     v.GetString("db.driver"),
		DBDSN:        v.GetString("db.dsn"),
		JWTSecret:    v.GetString("jwt.secret"),
		AccessTTL:    time.Duration(v.GetInt("jwt.access_ttl_min")) * time.Minute,
		RefreshTTL:   time.Duration(v.GetInt("jwt.refresh_ttl_hours")) * time.Hour,
		RedisAddr:    v.GetString("redis.addr"),
		MailHost:     v.GetString("mail.host"),
		MailPort:     v.GetInt("mail.port"),
		MailSender:   v.GetString("mail.sender"),
		MailPassword: v.GetString("mail.password"),
	}, nil
}

// SetupLogger replaces the global zap logger according to the
// configured level. Everything in the app logs through zap.L().
func SetupLogger(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)
	return nil
}
