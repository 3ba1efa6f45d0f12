package config

import (
	"errors"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config contains runtime configuration required by the service. It is
// built once in main and passed by reference; nothing reads the
// environment after startup.
type Config struct {
	DBURL        string `validate:"required"`
	ListenAddr   string `validate:"required"`
	TraccarURL   string `validate:"required,url"`
	TraccarToken string `validate:"required"`
	SyncToken    string `validate:"required"`
	AuthTokens   map[string]string // bearer token -> user ID
}

// Load reads required values from environment variables.
// AUTH_TOKENS format: "user1:token1,user2:token2"
func Load() (*Config, error) {
	cfg := &Config{
		DBURL:        strings.TrimSpace(os.Getenv("DB_URL")),
		ListenAddr:   strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		TraccarURL:   strings.TrimSpace(os.Getenv("TRACCAR_API_URL")),
		TraccarToken: strings.TrimSpace(os.Getenv("TRACCAR_API_TOKEN")),
		SyncToken:    strings.TrimSpace(os.Getenv("SYNC_TOKEN")),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	tokens, err := parseAuthTokens(os.Getenv("AUTH_TOKENS"))
	if err != nil {
		return nil, err
	}
	cfg.AuthTokens = tokens

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseAuthTokens parses the "user:token,user:token" pair list. In
// production the bearer credential would come from an identity provider;
// the static map keeps local setups self-contained.
func parseAuthTokens(raw string) (map[string]string, error) {
	tokens := map[string]string{}

	for _, p := range strings.Split(strings.TrimSpace(raw), ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(`AUTH_TOKENS must be "user:token,user:token"`)
		}
		user := strings.TrimSpace(parts[0])
		token := strings.TrimSpace(parts[1])
		if user == "" || token == "" {
			return nil, errors.New(`AUTH_TOKENS must be "user:token,user:token"`)
		}
		tokens[token] = user
	}

	// Local dev fallback so the service runs out-of-the-box.
	if len(tokens) == 0 {
		tokens["user-token-123"] = "user1"
	}

	return tokens, nil
}
