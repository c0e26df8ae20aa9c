package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/cylinder/domain"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/pkg/db"
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
	Locations locationdomain.Repository
}

// New creates the cylinder service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:        p.DB,
		log:       p.Log.Named("cylinder.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		locations: p.Locations,
	}
}

type ServiceImpl struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	locations locationdomain.Repository
}

func (s *ServiceImpl) Create(ctx context.Context, req domain.CreateCylinderRequest) (*domain.Cylinder, error) {
	req.SerialNumber = strings.TrimSpace(req.SerialNumber)
	req.Barcode = strings.TrimSpace(req.Barcode)
	if req.SerialNumber == "" {
		return nil, domain.ErrInvalidSerial
	}
	if req.Barcode == "" {
		return nil, domain.ErrInvalidBarcode
	}
	if !domain.ValidGasType(req.GasType) {
		return nil, domain.ErrInvalidGasType
	}
	if req.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	if req.Status == "" {
		req.Status = domain.StatusInService
	}
	if !domain.ValidStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}

	if existing, err := s.repo.FindBySerial(ctx, s.db, req.SerialNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrSerialTaken
	}
	if existing, err := s.repo.FindByBarcode(ctx, s.db, req.Barcode); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrBarcodeTaken
	}

	if req.CurrentLocationID != nil {
		loc, err := s.locations.FindByID(ctx, s.db, *req.CurrentLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrUnknownLocation
		}
	}

	now := time.Now().UTC()
	cylinder := &domain.Cylinder{
		ID:                 s.genID.Generate(),
		SerialNumber:       req.SerialNumber,
		Barcode:            req.Barcode,
		GasType:            req.GasType,
		Capacity:           req.Capacity,
		PressureRate:       req.PressureRate,
		TareWeight:         req.TareWeight,
		Status:             req.Status,
		CurrentLocationID:  req.CurrentLocationID,
		ManufactureDate:    req.ManufactureDate,
		LastInspectionDate: req.LastInspectionDate,
		NextInspectionDate: req.NextInspectionDate,
		LastHydroTestDate:  req.LastHydroTestDate,
		NextHydroTestDate:  req.NextHydroTestDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, cylinder); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSerialTaken
		}
		s.log.Error("failed to insert cylinder", zap.Error(err))
		return nil, err
	}

	s.log.Info("cylinder registered",
		zap.String("cylinder_id", cylinder.ID.String()),
		zap.String("serial_number", cylinder.SerialNumber),
	)
	return cylinder, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id snowflake.ID) (*domain.Cylinder, error) {
	cylinder, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrNotFound
	}
	return cylinder, nil
}

// Search resolves the identifier against id, serial number, then barcode.
func (s *ServiceImpl) Search(ctx context.Context, identifier string) (*domain.Cylinder, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrNotFound
	}

	if raw, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		cylinder, err := s.repo.FindByID(ctx, s.db, snowflake.ID(raw))
		if err != nil {
			return nil, err
		}
		if cylinder != nil {
			return cylinder, nil
		}
	}

	cylinder, err := s.repo.FindBySerial(ctx, s.db, identifier)
	if err != nil {
		return nil, err
	}
	if cylinder != nil {
		return cylinder, nil
	}

	cylinder, err = s.repo.FindByBarcode(ctx, s.db, identifier)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrNotFound
	}
	return cylinder, nil
}

func (s *ServiceImpl) List(ctx context.Context, req domain.ListCylindersRequest) ([]domain.Cylinder, error) {
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if req.GasType != "" && !domain.ValidGasType(req.GasType) {
		return nil, domain.ErrInvalidGasType
	}
	return s.repo.List(ctx, s.db, req)
}

func (s *ServiceImpl) Update(ctx context.Context, id snowflake.ID, patch domain.CylinderPatch) (*domain.Cylinder, error) {
	cylinder, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrNotFound
	}

	if patch.GasType != nil {
		if !domain.ValidGasType(*patch.GasType) {
			return nil, domain.ErrInvalidGasType
		}
		cylinder.GasType = *patch.GasType
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return nil, domain.ErrInvalidCapacity
		}
		cylinder.Capacity = *patch.Capacity
	}
	if patch.PressureRate != nil {
		cylinder.PressureRate = *patch.PressureRate
	}
	if patch.TareWeight != nil {
		cylinder.TareWeight = *patch.TareWeight
	}
	if patch.Status != nil {
		if !domain.ValidStatus(*patch.Status) {
			return nil, domain.ErrInvalidStatus
		}
		cylinder.Status = *patch.Status
	}
	if patch.CurrentLocationID != nil {
		loc, err := s.locations.FindByID(ctx, s.db, *patch.CurrentLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrUnknownLocation
		}
		cylinder.CurrentLocationID = patch.CurrentLocationID
	}
	if patch.CurrentCustomerID != nil {
		cylinder.CurrentCustomerID = patch.CurrentCustomerID
	}
	if patch.LastInspectionDate != nil {
		cylinder.LastInspectionDate = patch.LastInspectionDate
	}
	if patch.NextInspectionDate != nil {
		cylinder.NextInspectionDate = patch.NextInspectionDate
	}
	if patch.LastHydroTestDate != nil {
		cylinder.LastHydroTestDate = patch.LastHydroTestDate
	}
	if patch.NextHydroTestDate != nil {
		cylinder.NextHydroTestDate = patch.NextHydroTestDate
	}

	cylinder.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, cylinder); err != nil {
		s.log.Error("failed to update cylinder", zap.Error(err))
		return nil, err
	}
	return cylinder, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id snowflake.ID) error {
	cylinder, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if cylinder == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
