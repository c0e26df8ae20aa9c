package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/audit/domain"
	auditrepo "github.com/gastrak/gastrak/internal/audit/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuditService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AuditRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{DB: db, Log: zap.NewNop(), GenID: node, Repo: auditrepo.Provide()})
	return svc, db, node
}

func TestLogAndListAuditRecords(t *testing.T) {
	svc, _, node := setupAuditService(t)
	ctx := context.Background()

	actor := node.Generate()
	target := node.Generate().String()
	require.NoError(t, svc.Log(ctx, domain.Entry{
		ActorID:    &actor,
		Action:     "cylinder.create",
		TargetType: "cylinder",
		TargetID:   &target,
		Metadata:   map[string]any{"serial_number": "CYL-1"},
	}))
	require.NoError(t, svc.Log(ctx, domain.Entry{
		ActorID:    &actor,
		Action:     "cylinder.delete",
		TargetType: "cylinder",
		TargetID:   &target,
	}))

	records, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = svc.List(ctx, domain.ListRequest{Action: "cylinder.create"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "cylinder.create", records[0].Action)
	require.NotNil(t, records[0].ActorID)
	require.Equal(t, actor, *records[0].ActorID)
	require.Equal(t, "CYL-1", records[0].Metadata["serial_number"])
}

func TestLogSkipsBlankAction(t *testing.T) {
	svc, db, _ := setupAuditService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, domain.Entry{Action: "  ", TargetType: "cylinder"}))

	var count int64
	require.NoError(t, db.Model(&domain.AuditRecord{}).Count(&count).Error)
	require.Zero(t, count)
}
