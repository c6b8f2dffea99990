package services

import (
	portsrepo "github.com/inboxd/backend/internal/core/ports/repositories"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/platform/config"
)

// NewServiceContainer wires the repositories and config into the full set of
// application services.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	tokenService := NewTokenService(cfg)

	return &portssvc.ServiceContainer{
		Token:       tokenService,
		User:        NewUserService(repos.UserRepo),
		Auth:        NewAuthService(cfg, repos.UserRepo, repos.RefreshTokenRepo, tokenService),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
