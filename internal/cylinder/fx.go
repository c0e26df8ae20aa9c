package cylinder

import (
	"github.com/gastrak/gastrak/internal/cylinder/repository"
	"github.com/gastrak/gastrak/internal/cylinder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cylinder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
