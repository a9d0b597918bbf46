package main

import (
	"time"

	"github.com/Gkemhcs/janus-backend/internal/auth"
	"github.com/Gkemhcs/janus-backend/internal/auth/jwt"
	"github.com/Gkemhcs/janus-backend/internal/config"
	"github.com/Gkemhcs/janus-backend/internal/oauth"
	"github.com/Gkemhcs/janus-backend/internal/oauth/provider"
	"github.com/Gkemhcs/janus-backend/internal/oauth/state"
	"github.com/Gkemhcs/janus-backend/internal/server"
	"github.com/Gkemhcs/janus-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := utils.New(cfg)

	stateTTL := time.Duration(cfg.StateTTLSeconds) * time.Second
	states := state.NewStore(stateTTL)
	oauthService := oauth.NewService(states, stateTTL, logger)

	registerProviders(cfg, oauthService, logger)

	// JWT manager setup for session tokens
	jwter := jwt.NewManager(cfg.JWTSecret, time.Duration(cfg.AccessTokenDuration)*time.Minute)
	authService := auth.NewAuthService(oauthService, jwter, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	s := server.New(cfg, logger)
	s.SetupRoutes(authHandler, jwter)

	if err := s.Start(); err != nil {
		logger.Fatal("server failed to start", err)
	}
}

// registerProviders wires every enabled provider from the configuration into
// the OAuth service. Providers with missing credentials are still registered
// so the API can report them as unconfigured.
func registerProviders(cfg *config.Config, svc *oauth.Service, logger *logrus.Logger) {
	if cfg.ProviderEnabled("github") {
		svc.Register(provider.NewGitHub(provider.Config{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			Scope:        cfg.GitHub.ScopeList(),
		}))
	}
	if cfg.ProviderEnabled("google") {
		svc.Register(provider.NewGoogle(provider.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Scope:        cfg.Google.ScopeList(),
		}))
	}
	if cfg.ProviderEnabled("discord") {
		svc.Register(provider.NewDiscord(provider.Config{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			Scope:        cfg.Discord.ScopeList(),
		}))
	}
	if cfg.OIDCName != "" && cfg.ProviderEnabled(cfg.OIDCName) {
		generic, err := provider.NewGeneric(cfg.OIDCName, provider.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			Scope:        cfg.OIDC.ScopeList(),
			AuthorizeURL: cfg.OIDC.AuthorizeURL,
			TokenURL:     cfg.OIDC.TokenURL,
			UserInfoURL:  cfg.OIDC.UserInfoURL,
			RevokeURL:    cfg.OIDC.RevokeURL,
		})
		if err != nil {
			logger.Warnf("skipping generic OIDC provider %s: %v", cfg.OIDCName, err)
			return
		}
		svc.Register(generic)
	}
}
