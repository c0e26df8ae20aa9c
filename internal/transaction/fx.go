package transaction

import (
	"github.com/gastrak/gastrak/internal/transaction/repository"
	"github.com/gastrak/gastrak/internal/transaction/service"
	"go.uber.org/fx"
)

var Module = fx.Module("transaction.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
