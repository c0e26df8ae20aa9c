package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/internal/movement/domain"
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
	Customers customerdomain.Repository
}

// New creates the movement service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:        p.DB,
		log:       p.Log.Named("movement.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		cylinders: p.Cylinders,
		locations: p.Locations,
		customers: p.Customers,
	}
}

type ServiceImpl struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	cylinders cylinderdomain.Repository
	locations locationdomain.Repository
	customers customerdomain.Repository
}

// Record persists the movement and rewrites the cylinder's current location,
// holder, and status in a single transaction.
func (s *ServiceImpl) Record(ctx context.Context, req domain.RecordMovementRequest) (*domain.Movement, error) {
	if !domain.ValidType(req.MovementType) {
		return nil, domain.ErrInvalidType
	}

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

	dest, err := s.locations.FindByID(ctx, s.db, req.ToLocationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrUnknownLocation
	}
	if req.FromLocationID != nil {
		src, err := s.locations.FindByID(ctx, s.db, *req.FromLocationID)
		if err != nil {
			return nil, err
		}
		if src == nil {
			return nil, domain.ErrUnknownLocation
		}
	}
	if req.CustomerID != nil {
		customer, err := s.customers.FindByID(ctx, s.db, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrUnknownCustomer
		}
	}

	if req.MovementDate.IsZero() {
		req.MovementDate = time.Now().UTC()
	}
	if req.FromLocationID == nil {
		req.FromLocationID = cylinder.CurrentLocationID
	}

	movement := &domain.Movement{
		ID:             s.genID.Generate(),
		CylinderID:     req.CylinderID,
		MovementType:   req.MovementType,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		CustomerID:     req.CustomerID,
		MovedByID:      req.MovedByID,
		MovementDate:   req.MovementDate,
		Notes:          req.Notes,
		CreatedAt:      time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, movement); err != nil {
			return err
		}

		to := req.ToLocationID
		cylinder.CurrentLocationID = &to
		switch req.MovementType {
		case domain.TypeDelivery:
			cylinder.CurrentCustomerID = req.CustomerID
			if req.CustomerID != nil {
				cylinder.Status = cylinderdomain.StatusAtCustomer
			}
		case domain.TypePickup:
			cylinder.CurrentCustomerID = nil
			cylinder.Status = cylinderdomain.StatusInTransit
		case domain.TypeReturn:
			cylinder.CurrentCustomerID = nil
			cylinder.Status = cylinderdomain.StatusInService
		}
		cylinder.UpdatedAt = time.Now().UTC()
		return s.cylinders.Update(ctx, tx, cylinder)
	})
	if err != nil {
		s.log.Error("failed to record movement", zap.Error(err))
		return nil, err
	}

	s.log.Info("movement recorded",
		zap.String("movement_id", movement.ID.String()),
		zap.String("cylinder_id", movement.CylinderID.String()),
		zap.String("movement_type", string(movement.MovementType)),
	)
	return movement, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id snowflake.ID) (*domain.Movement, error) {
	movement, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

func (s *ServiceImpl) List(ctx context.Context, req domain.ListMovementsRequest) ([]domain.Movement, error) {
	if req.Type != "" && !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	return s.repo.List(ctx, s.db, req)
}
