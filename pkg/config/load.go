package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads .env (when present) and populates App from the environment.
func Load() (*App, error) {
	logger := slog.Default()
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"server_host", cfg.Server.Host,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Jwt.Expiry,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
