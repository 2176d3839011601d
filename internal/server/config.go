package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/velosh/paddockwire/pkg/config/env"
	"github.com/velosh/paddockwire/pkg/stringsutil"
)

const defaultRateLimitMax = 30

type Config struct {
	Port         string
	CorsOrigins  []string
	RateLimitMax int
	SourcesPath  string
}

func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/news_api/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	port := env.String("PORT", "8080")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	var origins []string
	corsOriginsEnv := os.Getenv("CORS_ORIGINS")
	if corsOriginsEnv != "" {
		origins = strings.Split(corsOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		origins = stringsutil.RemoveEmptyStrings(origins)
	}

	return &Config{
		Port:         port,
		CorsOrigins:  origins,
		RateLimitMax: env.Int("RATE_LIMIT_MAX", defaultRateLimitMax),
		SourcesPath:  env.String("SOURCES_PATH", ""),
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
