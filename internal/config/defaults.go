package config

import "time"

const (
	defaultEnvFile          = ".env"
	defaultTokenIssuer      = "escrow-api"
	defaultTokenDuration    = 7 * 24 * time.Hour
	defaultBcryptCost       = 10
	defaultHTTPAddress      = ":8080"
	defaultRequestTimeout   = 30 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultAllowedOrigin    = "http://localhost:3000"
	defaultAdapterAddress   = "http://localhost:8080"
	defaultPresenceSchedule = "@every 1m"
	defaultPresenceTTL      = 15 * time.Minute
	defaultCategoriesTTL    = 5 * time.Minute
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
			BcryptCost:    defaultBcryptCost,
			Version:       "dev",
			LogLevel:      "info",
		},
		Storage: Storage{
			Redis: Redis{CategoriesTTL: defaultCategoriesTTL},
		},
		Server: Server{
			HTTPAddress:     defaultHTTPAddress,
			RequestTimeout:  defaultRequestTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			AllowedOrigins:  []string{defaultAllowedOrigin},
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			PresenceSchedule: defaultPresenceSchedule,
			PresenceTTL:      defaultPresenceTTL,
		},
	}
}
