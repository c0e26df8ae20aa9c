package audit

import (
	"github.com/gastrak/gastrak/internal/audit/repository"
	"github.com/gastrak/gastrak/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
