package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/customer/domain"
	"github.com/gastrak/gastrak/pkg/db"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing != nil {
		return domain.Customer{}, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		Country:      strings.TrimSpace(req.Country),
		BusinessType: strings.TrimSpace(req.BusinessType),
		TaxID:        strings.TrimSpace(req.TaxID),
		CreditLimit:  req.CreditLimit,
		PaymentTerms: strings.TrimSpace(req.PaymentTerms),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrEmailTaken
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomersRequest) ([]domain.Customer, error) {
	return s.repo.List(ctx, s.db, req, pagination.Pagination{Skip: req.Skip, Limit: req.Limit})
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, patch domain.CustomerPatch) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if patch.Phone != nil {
		customer.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Address != nil {
		customer.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.City != nil {
		customer.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		customer.State = strings.TrimSpace(*patch.State)
	}
	if patch.ZipCode != nil {
		customer.ZipCode = strings.TrimSpace(*patch.ZipCode)
	}
	if patch.Country != nil {
		customer.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.BusinessType != nil {
		customer.BusinessType = strings.TrimSpace(*patch.BusinessType)
	}
	if patch.TaxID != nil {
		customer.TaxID = strings.TrimSpace(*patch.TaxID)
	}
	if patch.CreditLimit != nil {
		customer.CreditLimit = *patch.CreditLimit
	}
	if patch.PaymentTerms != nil {
		customer.PaymentTerms = strings.TrimSpace(*patch.PaymentTerms)
	}
	if patch.IsActive != nil {
		customer.IsActive = *patch.IsActive
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}
