package config

import (
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the API base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the configuration of cmd/client, a subset of
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter

	// Args is the command and its operands, e.g. ["jobs", "react"].
	Args []string
}

// GetClientConfig builds and validates the client configuration from the
// same sources as the server. Server-only settings are not required.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Args: cfg.Args,
	}

	return clientCfg, clientCfg.validate()
}
