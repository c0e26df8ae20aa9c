package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/config"
	"github.com/gastrak/gastrak/internal/logger"
	"github.com/gastrak/gastrak/internal/migration"
	"github.com/gastrak/gastrak/internal/observability"
	"github.com/gastrak/gastrak/internal/server"
	"github.com/gastrak/gastrak/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
