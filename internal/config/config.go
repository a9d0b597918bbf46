package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ProviderConfig holds the credentials and optional overrides for one OAuth
// provider. Scope is a space-separated override of the vendor default.
type ProviderConfig struct {
	ClientID     string // OAuth client ID
	ClientSecret string // OAuth client secret
	Scope        string // Optional scope override, space-separated
	AuthorizeURL string // Optional endpoint override (self-hosted instances)
	TokenURL     string // Optional endpoint override
	UserInfoURL  string // Optional endpoint override
	RevokeURL    string // Optional endpoint override
}

// ScopeList splits the configured scope override into individual scopes.
func (p ProviderConfig) ScopeList() []string {
	if p.Scope == "" {
		return nil
	}
	return strings.Fields(p.Scope)
}

// Config holds all configuration values for the application, loaded from
// environment variables or config files. This struct centralizes
// configuration for maintainability and testability.
type Config struct {
	Port                string         // HTTP server port
	Env                 string         // Application environment (e.g., development, production)
	StateTTLSeconds     int            // CSRF state token lifetime in seconds
	EnabledProviders    []string       // Provider names to register; empty means all configured
	JWTSecret           string         // Secret key for signing session JWTs
	AccessTokenDuration int            // Session token duration in minutes
	GitHub              ProviderConfig // GitHub OAuth credentials
	Google              ProviderConfig // Google OAuth credentials
	Discord             ProviderConfig // Discord OAuth credentials
	OIDC                ProviderConfig // Generic OIDC provider credentials
	OIDCName            string         // Registry name for the generic OIDC provider
}

// Load reads configuration from the .env file and environment variables,
// returning a Config struct. This function enables flexible configuration
// for different environments (dev, prod, test).
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("STATE_TTL_SECONDS", 600)    // 10 minutes
	viper.SetDefault("ACCESS_TOKEN_DURATION", 60) // 1 hour in minutes
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var enabled []string
	if raw := viper.GetString("ENABLED_PROVIDERS"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				enabled = append(enabled, name)
			}
		}
	}

	return &Config{
		Port:                viper.GetString("PORT"),
		Env:                 viper.GetString("ENV"),
		StateTTLSeconds:     viper.GetInt("STATE_TTL_SECONDS"),
		EnabledProviders:    enabled,
		JWTSecret:           viper.GetString("JWT_SECRET"),
		AccessTokenDuration: viper.GetInt("ACCESS_TOKEN_DURATION"),
		GitHub: ProviderConfig{
			ClientID:     viper.GetString("GITHUB_CLIENT_ID"),
			ClientSecret: viper.GetString("GITHUB_CLIENT_SECRET"),
			Scope:        viper.GetString("GITHUB_SCOPE"),
		},
		Google: ProviderConfig{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			Scope:        viper.GetString("GOOGLE_SCOPE"),
		},
		Discord: ProviderConfig{
			ClientID:     viper.GetString("DISCORD_CLIENT_ID"),
			ClientSecret: viper.GetString("DISCORD_CLIENT_SECRET"),
			Scope:        viper.GetString("DISCORD_SCOPE"),
		},
		OIDC: ProviderConfig{
			ClientID:     viper.GetString("OIDC_CLIENT_ID"),
			ClientSecret: viper.GetString("OIDC_CLIENT_SECRET"),
			Scope:        viper.GetString("OIDC_SCOPE"),
			AuthorizeURL: viper.GetString("OIDC_AUTHORIZE_URL"),
			TokenURL:     viper.GetString("OIDC_TOKEN_URL"),
			UserInfoURL:  viper.GetString("OIDC_USERINFO_URL"),
			RevokeURL:    viper.GetString("OIDC_REVOKE_URL"),
		},
		OIDCName: viper.GetString("OIDC_PROVIDER_NAME"),
	}, nil
}

// ProviderEnabled reports whether the named provider should be registered.
// An empty enabled list means every configured provider is registered.
func (c *Config) ProviderEnabled(name string) bool {
	if len(c.EnabledProviders) == 0 {
		return true
	}
	for _, enabled := range c.EnabledProviders {
		if enabled == name {
			return true
		}
	}
	return false
}
