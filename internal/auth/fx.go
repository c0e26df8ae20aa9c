package auth

import (
	"github.com/gastrak/gastrak/internal/auth/repository"
	"github.com/gastrak/gastrak/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideTokens),
	fx.Provide(service.New),
)
