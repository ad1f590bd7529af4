// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library, following the `env` and `envPrefix` tags of [StructuredConfig].
// Slices such as SERVER_ALLOWED_ORIGINS are split on commas.
func parseEnv(cfg any) error {
	err := env.ParseWithOptions(cfg, env.Options{})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
