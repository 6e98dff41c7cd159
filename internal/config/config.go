package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Flow orderings for the registration state machine. OTPFirst is the
// current backend behavior: verify-otp before complete-profile. Older
// deployments ran the profile step first; the controller honors either.
const (
	FlowOTPFirst     = "otp-first"
	FlowProfileFirst = "profile-first"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type StorageConfig struct {
	Backend   string `yaml:"backend"` // "file" or "redis"
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	Flow string `yaml:"flow"`
}

type LogConfig struct {
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
}

type ConfigFile struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	StorageBackend   string
	StoragePath      string
	StorageNamespace string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	AuthFlow         string
	LogEnvironment   string
	LogLevel         string
	LogFormat        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present, then applies .env and
// VCM_* environment overrides. A missing config file is not an error;
// defaults reproduce the development setup (local backend, file store).
func Load() (*Config, error) {
	// .env is optional, same as the backends in this platform
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("VCM_CONFIG", "config/config.yml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		configFile = &ConfigFile{}
	}

	cfg := &Config{
		BaseURL:          env("VCM_API_BASE_URL", defaultStr(configFile.API.BaseURL, "http://localhost:8080/api/v1")),
		StorageBackend:   env("VCM_STORAGE_BACKEND", defaultStr(configFile.Storage.Backend, "file")),
		StoragePath:      env("VCM_STORAGE_PATH", configFile.Storage.Path),
		StorageNamespace: env("VCM_STORAGE_NAMESPACE", defaultStr(configFile.Storage.Namespace, "vcm")),
		RedisAddr:        env("VCM_REDIS_ADDR", defaultStr(configFile.Redis.Addr, "localhost:6379")),
		RedisPassword:    env("VCM_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		AuthFlow:         env("VCM_AUTH_FLOW", defaultStr(configFile.Auth.Flow, FlowOTPFirst)),
		LogEnvironment:   env("VCM_LOG_ENV", defaultStr(configFile.Log.Environment, "development")),
		LogLevel:         env("VCM_LOG_LEVEL", defaultStr(configFile.Log.Level, "info")),
		LogFormat:        env("VCM_LOG_FORMAT", defaultStr(configFile.Log.Format, "console")),
	}

	if v := os.Getenv("VCM_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VCM_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	timeout := env("VCM_API_TIMEOUT", defaultStr(configFile.API.Timeout, "15s"))
	cfg.RequestTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid API timeout: %w", err)
	}

	if cfg.AuthFlow != FlowOTPFirst && cfg.AuthFlow != FlowProfileFirst {
		return nil, fmt.Errorf("unknown auth flow %q", cfg.AuthFlow)
	}
	if cfg.StorageBackend != "file" && cfg.StorageBackend != "redis" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defaultStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
