package location

import (
	"github.com/gastrak/gastrak/internal/location/repository"
	"github.com/gastrak/gastrak/internal/location/service"
	"go.uber.org/fx"
)

var Module = fx.Module("location.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
