package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/internal/fill/domain"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Cylinders cylinderdomain.Repository
	Locations locationdomain.Repository
}

// New creates the fill service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:        p.DB,
		log:       p.Log.Named("fill.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		cylinders: p.Cylinders,
		locations: p.Locations,
	}
}

type ServiceImpl struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	cylinders cylinderdomain.Repository
	locations locationdomain.Repository
}

// Record logs the fill and updates the cylinder in the same transaction:
// the last fill date always, and the status to full when it was empty.
func (s *ServiceImpl) Record(ctx context.Context, req domain.RecordFillRequest) (*domain.FillRecord, error) {
	cylinder, err := s.cylinders.FindByID(ctx, s.db, req.CylinderID)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrUnknownCylinder
	}
	if cylinderdomain.Terminal(cylinder.Status) {
		return nil, domain.ErrCylinderRetired
	}
	if req.LocationID != nil {
		loc, err := s.locations.FindByID(ctx, s.db, *req.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrUnknownLocation
		}
	}

	fillDate := time.Now().UTC()
	if !req.FillDate.IsZero() {
		fillDate = req.FillDate.UTC()
	}

	record := &domain.FillRecord{
		ID:           s.genID.Generate(),
		CylinderID:   req.CylinderID,
		LocationID:   req.LocationID,
		FilledByID:   req.FilledByID,
		FillDate:     fillDate,
		FillPressure: req.FillPressure,
		FillWeight:   req.FillWeight,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, record); err != nil {
			return err
		}
		cylinder.LastFillDate = &fillDate
		if cylinder.Status == cylinderdomain.StatusEmpty {
			cylinder.Status = cylinderdomain.StatusFull
		}
		cylinder.UpdatedAt = time.Now().UTC()
		return s.cylinders.Update(ctx, tx, cylinder)
	})
	if err != nil {
		s.log.Error("failed to record fill", zap.Error(err))
		return nil, err
	}

	s.log.Info("fill recorded",
		zap.String("fill_id", record.ID.String()),
		zap.String("cylinder_id", record.CylinderID.String()),
	)
	return record, nil
}

func (s *ServiceImpl) List(ctx context.Context, req domain.ListFillsRequest) ([]domain.FillRecord, error) {
	return s.repo.List(ctx, s.db, req)
}
