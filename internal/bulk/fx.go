package bulk

import (
	"github.com/gastrak/gastrak/internal/bulk/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bulk.service",
	fx.Provide(service.New),
)
