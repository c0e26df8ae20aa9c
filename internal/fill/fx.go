package fill

import (
	"github.com/gastrak/gastrak/internal/fill/repository"
	"github.com/gastrak/gastrak/internal/fill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fill.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
