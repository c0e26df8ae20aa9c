package customer

import (
	"github.com/gastrak/gastrak/internal/customer/repository"
	"github.com/gastrak/gastrak/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
