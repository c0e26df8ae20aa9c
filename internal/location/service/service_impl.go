package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	"github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
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
	Customers customerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("location.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLocationRequest) (domain.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Location{}, domain.ErrInvalidName
	}
	if !domain.ValidType(req.Type) {
		return domain.Location{}, domain.ErrInvalidType
	}

	if req.CustomerID != nil {
		customer, err := s.customers.FindByID(ctx, s.db, *req.CustomerID)
		if err != nil {
			return domain.Location{}, err
		}
		if customer == nil {
			return domain.Location{}, domain.ErrUnknownCustomer
		}
	}

	location := domain.Location{
		ID:         s.genID.Generate(),
		CustomerID: req.CustomerID,
		Name:       name,
		Type:       req.Type,
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		ZipCode:    strings.TrimSpace(req.ZipCode),
		Country:    strings.TrimSpace(req.Country),
		IsPrimary:  req.IsPrimary,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &location); err != nil {
		return domain.Location{}, err
	}
	return location, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLocationsRequest) ([]domain.Location, error) {
	if req.Type != "" && !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	return s.repo.List(ctx, s.db, req, pagination.Pagination{Skip: req.Skip, Limit: req.Limit})
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Location, error) {
	location, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Location{}, err
	}
	if location == nil {
		return domain.Location{}, domain.ErrNotFound
	}
	return *location, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, patch domain.LocationPatch) (domain.Location, error) {
	location, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Location{}, err
	}
	if location == nil {
		return domain.Location{}, domain.ErrNotFound
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Location{}, domain.ErrInvalidName
		}
		location.Name = name
	}
	if patch.Type != nil {
		if !domain.ValidType(*patch.Type) {
			return domain.Location{}, domain.ErrInvalidType
		}
		location.Type = *patch.Type
	}
	if patch.Address != nil {
		location.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.City != nil {
		location.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		location.State = strings.TrimSpace(*patch.State)
	}
	if patch.ZipCode != nil {
		location.ZipCode = strings.TrimSpace(*patch.ZipCode)
	}
	if patch.Country != nil {
		location.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.IsPrimary != nil {
		location.IsPrimary = *patch.IsPrimary
	}

	if err := s.repo.Update(ctx, s.db, location); err != nil {
		return domain.Location{}, err
	}
	return *location, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	location, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
