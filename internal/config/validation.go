package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"slices"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
//
// The Gemini API key is intentionally NOT validated here: a missing or
// placeholder key is a supported configuration (demo mode), not an error.
func (c *Config) Validate() error {
	// 0. Check for nil config (defensive programming)
	if c == nil {
		return ErrConfigNil
	}

	// 1. Model configuration validation
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// History token budget range. The lower bound keeps room for at least one
	// exchange; the upper bound stays well under the Gemini context window.
	if c.MaxHistoryTokens < MinHistoryTokens || c.MaxHistoryTokens > MaxAllowedHistoryTokens {
		return fmt.Errorf("%w: must be between %d and %d, got %d",
			ErrInvalidHistoryTokens, MinHistoryTokens, MaxAllowedHistoryTokens, c.MaxHistoryTokens)
	}

	// 2. PostgreSQL configuration validation
	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host cannot be empty", ErrInvalidPostgresHost)
	}

	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPostgresPort, c.PostgresPort)
	}

	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: database name cannot be empty", ErrInvalidPostgresDBName)
	}

	// 3. PostgreSQL password validation
	if c.PostgresPassword == "" {
		return fmt.Errorf("%w: postgres_password must be set in config.yaml",
			ErrInvalidPostgresPassword)
	}

	// Warn if using default dev password (but don't block - user might be in dev)
	if c.PostgresPassword == "parley_dev_password" {
		slog.Warn("Using default development password for PostgreSQL",
			"warning", "Change postgres_password in config.yaml for production deployments")
	}

	// Validate password strength (minimum 8 characters)
	if len(c.PostgresPassword) < 8 {
		return fmt.Errorf("%w: postgres_password must be at least 8 characters (got %d)",
			ErrInvalidPostgresPassword, len(c.PostgresPassword))
	}

	// 4. PostgreSQL SSL mode validation
	// DO NOT mutate config in Validate() - just validate
	// Note: Even with setDefaults(), user can override with empty value in YAML
	// Modern SSL modes only - exclude deprecated allow/prefer (MITM vulnerable)
	// Reference: https://www.postgresql.org/docs/current/libpq-ssl.html
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	if c.PostgresSSLMode == "" {
		return fmt.Errorf("%w: postgres_ssl_mode is empty (should have default from setDefaults)",
			ErrInvalidPostgresSSLMode)
	}

	// Check if SSL mode is one of the valid PostgreSQL modes
	if !slices.Contains(validSSLModes, c.PostgresSSLMode) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v\n"+
			"Note: 'allow' and 'prefer' modes are deprecated (vulnerable to MITM attacks)",
			ErrInvalidPostgresSSLMode, c.PostgresSSLMode, validSSLModes)
	}

	return nil
}

// ValidateServe validates the additional fields the HTTP server depends on.
// Called from the serve command only; CLI-less deployments may carry invalid
// serve settings without being blocked at Load time.
func (c *Config) ValidateServe() error {
	if c == nil {
		return ErrConfigNil
	}

	for _, origin := range c.CORSOrigins {
		u, err := url.Parse(origin)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidCORSOrigin, origin, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q must be an absolute http(s) origin like http://localhost:5173",
				ErrInvalidCORSOrigin, origin)
		}
	}

	return nil
}
