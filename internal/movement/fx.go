package movement

import (
	"github.com/gastrak/gastrak/internal/movement/repository"
	"github.com/gastrak/gastrak/internal/movement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("movement.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
