package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/internal/maintenance/domain"
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
}

// New creates the maintenance service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:        p.DB,
		log:       p.Log.Named("maintenance.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		cylinders: p.Cylinders,
	}
}

type ServiceImpl struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	cylinders cylinderdomain.Repository
}

func (s *ServiceImpl) CreateRecord(ctx context.Context, req domain.CreateRecordRequest) (*domain.Record, error) {
	if !domain.ValidType(req.MaintenanceType) {
		return nil, domain.ErrInvalidType
	}

	cylinder, err := s.cylinders.FindByID(ctx, s.db, req.CylinderID)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrUnknownCylinder
	}

	if req.ScheduledDate.IsZero() {
		req.ScheduledDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	record := &domain.Record{
		ID:              s.genID.Generate(),
		CylinderID:      req.CylinderID,
		MaintenanceType: req.MaintenanceType,
		Status:          domain.RecordScheduled,
		ScheduledDate:   req.ScheduledDate,
		Cost:            req.Cost,
		Description:     req.Description,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertRecord(ctx, s.db, record); err != nil {
		s.log.Error("failed to insert maintenance record", zap.Error(err))
		return nil, err
	}

	s.log.Info("maintenance scheduled",
		zap.String("record_id", record.ID.String()),
		zap.String("cylinder_id", record.CylinderID.String()),
		zap.String("maintenance_type", string(record.MaintenanceType)),
	)
	return record, nil
}

func (s *ServiceImpl) GetRecord(ctx context.Context, id snowflake.ID) (*domain.Record, error) {
	record, err := s.repo.FindRecordByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (s *ServiceImpl) ListRecords(ctx context.Context, req domain.ListRecordsRequest) ([]domain.Record, error) {
	if req.Type != "" && !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if req.Status != "" && !domain.ValidRecordStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.ListRecords(ctx, s.db, req)
}

func (s *ServiceImpl) UpdateRecord(ctx context.Context, id snowflake.ID, patch domain.RecordPatch) (*domain.Record, error) {
	record, err := s.repo.FindRecordByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.Status == domain.RecordCompleted {
		return nil, domain.ErrAlreadyCompleted
	}

	if patch.Status != nil {
		if !domain.ValidRecordStatus(*patch.Status) {
			return nil, domain.ErrInvalidStatus
		}
		// Completion goes through CompleteRecord so the cylinder side
		// effects are not skipped.
		if *patch.Status == domain.RecordCompleted {
			return nil, domain.ErrInvalidStatus
		}
		record.Status = *patch.Status
	}
	if patch.ScheduledDate != nil {
		record.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Cost != nil {
		record.Cost = *patch.Cost
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}

	record.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateRecord(ctx, s.db, record); err != nil {
		s.log.Error("failed to update maintenance record", zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (s *ServiceImpl) CompleteRecord(ctx context.Context, id snowflake.ID, req domain.CompleteRecordRequest) (*domain.Record, error) {
	record, err := s.repo.FindRecordByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.Status == domain.RecordCompleted {
		return nil, domain.ErrAlreadyCompleted
	}

	completed := time.Now().UTC()
	if req.CompletedDate != nil {
		completed = req.CompletedDate.UTC()
	}

	record.Status = domain.RecordCompleted
	record.CompletedDate = &completed
	performer := req.PerformedByID
	record.PerformedByID = &performer
	if req.Cost != nil {
		record.Cost = *req.Cost
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	record.UpdatedAt = completed

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateRecord(ctx, tx, record); err != nil {
			return err
		}

		cylinder, err := s.cylinders.FindByID(ctx, tx, record.CylinderID)
		if err != nil {
			return err
		}
		if cylinder == nil {
			return domain.ErrUnknownCylinder
		}

		// Every completed service counts as the most recent inspection of
		// the asset. Only the annual inspection type auto-projects the next
		// one; other types project through a recurring schedule when one
		// is active.
		cylinder.LastInspectionDate = &completed
		if record.MaintenanceType == domain.TypeInspection {
			next := completed.AddDate(0, 0, domain.InspectionIntervalDays)
			cylinder.NextInspectionDate = &next
		}
		if record.MaintenanceType == domain.TypeHydroTest {
			cylinder.LastHydroTestDate = &completed
		}
		cylinder.UpdatedAt = completed
		if err := s.cylinders.Update(ctx, tx, cylinder); err != nil {
			return err
		}

		schedule, err := s.repo.FindActiveSchedule(ctx, tx, record.CylinderID, record.MaintenanceType)
		if err != nil {
			return err
		}
		if schedule == nil {
			return nil
		}
		schedule.NextDueDate = completed.AddDate(0, 0, schedule.IntervalDays)
		schedule.UpdatedAt = completed
		return s.repo.UpdateSchedule(ctx, tx, schedule)
	})
	if err != nil {
		s.log.Error("failed to complete maintenance record", zap.Error(err))
		return nil, err
	}

	s.log.Info("maintenance completed",
		zap.String("record_id", record.ID.String()),
		zap.String("cylinder_id", record.CylinderID.String()),
		zap.String("maintenance_type", string(record.MaintenanceType)),
	)
	return record, nil
}

func (s *ServiceImpl) Upcoming(ctx context.Context, days int) ([]domain.Record, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	return s.repo.ListScheduledBetween(ctx, s.db, now, now.AddDate(0, 0, days))
}

func (s *ServiceImpl) Overdue(ctx context.Context) ([]domain.Record, error) {
	return s.repo.ListScheduledBefore(ctx, s.db, time.Now().UTC())
}

func (s *ServiceImpl) CreateSchedule(ctx context.Context, req domain.CreateScheduleRequest) (*domain.Schedule, error) {
	if !domain.ValidType(req.MaintenanceType) {
		return nil, domain.ErrInvalidType
	}
	if req.IntervalDays <= 0 {
		return nil, domain.ErrInvalidInterval
	}

	cylinder, err := s.cylinders.FindByID(ctx, s.db, req.CylinderID)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, domain.ErrUnknownCylinder
	}

	if req.NextDueDate.IsZero() {
		// Anchor the first due date on the last inspection when one exists.
		base := time.Now().UTC()
		if cylinder.LastInspectionDate != nil {
			base = cylinder.LastInspectionDate.UTC()
		}
		req.NextDueDate = base.AddDate(0, 0, req.IntervalDays)
	}

	now := time.Now().UTC()
	schedule := &domain.Schedule{
		ID:              s.genID.Generate(),
		CylinderID:      req.CylinderID,
		MaintenanceType: req.MaintenanceType,
		IntervalDays:    req.IntervalDays,
		NextDueDate:     req.NextDueDate,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertSchedule(ctx, s.db, schedule); err != nil {
		s.log.Error("failed to insert maintenance schedule", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func (s *ServiceImpl) ListSchedules(ctx context.Context, cylinderID *snowflake.ID) ([]domain.Schedule, error) {
	return s.repo.ListSchedules(ctx, s.db, cylinderID)
}
