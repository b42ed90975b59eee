// Package config loads the gateway configuration from the environment.
// A .env file in the working directory is honored when present, matching how
// the gateway is run in development; real deployments set the variables
// directly. All keys are prefixed LIBRARY_.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is immutable after Load.
type Config struct {
	Port        int
	BackendHost string
	ProtoPath   string

	// EtcdEndpoints enables backend discovery when non-empty; otherwise
	// BackendHost is dialed directly.
	EtcdEndpoints []string

	// RateLimit in requests/second for /api; 0 disables limiting.
	RateLimit float64
	RateBurst int

	LogLevel string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LIBRARY")
	v.AutomaticEnv()

	v.SetDefault("GATEWAY_PORT", 3001)
	v.SetDefault("BACKEND_HOST", "localhost:50051")
	v.SetDefault("PROTO_PATH", "proto/library.proto")
	v.SetDefault("ETCD_ENDPOINTS", "")
	v.SetDefault("RATE_LIMIT", 0.0)
	v.SetDefault("RATE_BURST", 0)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:        v.GetInt("GATEWAY_PORT"),
		BackendHost: v.GetString("BACKEND_HOST"),
		ProtoPath:   v.GetString("PROTO_PATH"),
		RateLimit:   v.GetFloat64("RATE_LIMIT"),
		RateBurst:   v.GetInt("RATE_BURST"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}

	if eps := v.GetString("ETCD_ENDPOINTS"); eps != "" {
		for _, ep := range strings.Split(eps, ",") {
			if ep = strings.TrimSpace(ep); ep != "" {
				cfg.EtcdEndpoints = append(cfg.EtcdEndpoints, ep)
			}
		}
	}

	return cfg, nil
}
