package maintenance

import (
	"github.com/gastrak/gastrak/internal/maintenance/repository"
	"github.com/gastrak/gastrak/internal/maintenance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("maintenance.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
