package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureDefaultSecret = "supersecretkey"

type Config struct {
	Addr          string          `yaml:"addr"`
	JWTSecret     string          `yaml:"jwt_secret"`
	APITimeout    time.Duration   `yaml:"timeout"`
	DatabasePath  string          `yaml:"database_path"`
	TokenDuration time.Duration   `yaml:"token_duration"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds request throughput per client. RPS is the token
// refill rate, Burst the bucket size. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LoadConfig builds the config from defaults, then HIREDECK_* environment
// variables, then the optional YAML file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("HIREDECK_ADDR", ":8080"),
		JWTSecret:     getEnv("HIREDECK_JWT_SECRET", insecureDefaultSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("HIREDECK_DATABASE_PATH", "hiredeck.db"),
		TokenDuration: 24 * time.Hour,
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("HIREDECK_RATE_LIMIT_RPS", 10),
			Burst: getEnvInt("HIREDECK_RATE_LIMIT_BURST", 20),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a real deployment.
// The insecure default JWT secret is only tolerated when HIREDECK_ENV is
// "development" or unset.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}

	env := os.Getenv("HIREDECK_ENV")
	if c.JWTSecret == "" || (c.JWTSecret == insecureDefaultSecret && env != "" && env != "development") {
		return fmt.Errorf("jwt_secret is insecure for env %q", env)
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	return def
}
