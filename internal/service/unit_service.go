package service

import (
	"context"
	"errors"

	"patio-slots/internal/models"

	"go.uber.org/zap"
)

// ErrInvalidUnit is returned when a unit lacks its code or name.
var ErrInvalidUnit = errors.New("unit code and name are required")

// UnitDirectory is the backend that owns unit records.
type UnitDirectory interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	CreateUnit(ctx context.Context, u models.Unit) (models.Unit, error)
	UpdateUnit(ctx context.Context, id int64, u models.Unit) (models.Unit, error)
	DeleteUnit(ctx context.Context, id int64) error
}

// UnitService validates unit edits before handing them to the backend.
type UnitService struct {
	dir    UnitDirectory
	logger *zap.Logger
}

func NewUnitService(dir UnitDirectory, logger *zap.Logger) *UnitService {
	return &UnitService{dir: dir, logger: logger}
}

func (s *UnitService) ListUnits(ctx context.Context) ([]models.Unit, error) {
	return s.dir.ListUnits(ctx)
}

func (s *UnitService) CreateUnit(ctx context.Context, u models.Unit) (models.Unit, error) {
	if !u.Valid() {
		return models.Unit{}, ErrInvalidUnit
	}
	created, err := s.dir.CreateUnit(ctx, u.Trimmed())
	if err != nil {
		return models.Unit{}, err
	}
	s.logger.Info("Unit created", zap.Int64("unit_id", created.ID), zap.String("code", created.Code))
	return created, nil
}

func (s *UnitService) UpdateUnit(ctx context.Context, id int64, u models.Unit) (models.Unit, error) {
	if !u.Valid() {
		return models.Unit{}, ErrInvalidUnit
	}
	updated, err := s.dir.UpdateUnit(ctx, id, u.Trimmed())
	if err != nil {
		return models.Unit{}, err
	}
	s.logger.Info("Unit updated", zap.Int64("unit_id", id))
	return updated, nil
}

func (s *UnitService) DeleteUnit(ctx context.Context, id int64) error {
	if err := s.dir.DeleteUnit(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Unit deleted", zap.Int64("unit_id", id))
	return nil
}
