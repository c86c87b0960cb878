package service

import (
	"context"
	"sync"

	"patio-slots/internal/events"
	"patio-slots/internal/models"
	"patio-slots/internal/slots"

	"go.uber.org/zap"
)

// YardCatalog lists the yards users can pick from.
type YardCatalog interface {
	ListYards(ctx context.Context) ([]models.Yard, error)
}

// StaticCatalog serves the built-in yard list.
type StaticCatalog struct{}

func (StaticCatalog) ListYards(context.Context) ([]models.Yard, error) {
	return slots.SeedYards(), nil
}

// YardService runs the load → mutate → save flow the yard screens rely on.
type YardService struct {
	store     *slots.Store
	catalog   YardCatalog
	publisher events.Publisher
	logger    *zap.Logger

	// serializes read-modify-write cycles so concurrent requests behave like one user
	mu sync.Mutex
}

// NewYardService wires the service. A nil catalog or publisher falls back to the
// static catalog and a no-op publisher.
func NewYardService(store *slots.Store, catalog YardCatalog, publisher events.Publisher, logger *zap.Logger) *YardService {
	if catalog == nil {
		catalog = StaticCatalog{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &YardService{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

// Yards returns the yard catalog. If the catalog source fails the built-in list is used.
func (s *YardService) Yards(ctx context.Context) []models.Yard {
	yards, err := s.catalog.ListYards(ctx)
	if err != nil {
		s.logger.Warn("Yard catalog unavailable, using built-in yards", zap.Error(err))
		return slots.SeedYards()
	}
	return yards
}

// Slots returns yardID's current slot list (persisted, seeded or empty).
func (s *YardService) Slots(ctx context.Context, yardID string) []models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Resolve(ctx, yardID)
}

// AvailableSlots returns yardID's free slots.
func (s *YardService) AvailableSlots(ctx context.Context, yardID string) []models.Slot {
	return slots.Available(s.Slots(ctx, yardID))
}

// Summary counts yardID's slots by state.
func (s *YardService) Summary(ctx context.Context, yardID string) models.YardSummary {
	return models.Summarize(yardID, s.Slots(ctx, yardID))
}

// AssignVehicle parks v in slotID and persists the yard. It returns the new list.
func (s *YardService) AssignVehicle(ctx context.Context, yardID, slotID string, v models.Vehicle) ([]models.Slot, error) {
	updated, err := s.update(ctx, yardID, slotID, "assignment", func(list []models.Slot) ([]models.Slot, error) {
		return slots.Assign(list, slotID, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle assigned",
		zap.String("yard_id", yardID),
		zap.String("slot_id", slotID),
		zap.String("plate", v.Trimmed().Plate),
	)

	parked, _ := slots.Find(updated, slotID)
	vehicle, _ := parked.Vehicle()
	s.publish(ctx, events.NewSlotEvent(events.SlotAssigned, yardID, slotID, &vehicle))
	return updated, nil
}

// VacateSlot frees slotID and persists the yard. It returns the new list.
func (s *YardService) VacateSlot(ctx context.Context, yardID, slotID string) ([]models.Slot, error) {
	updated, err := s.update(ctx, yardID, slotID, "vacate", func(list []models.Slot) ([]models.Slot, error) {
		return slots.Vacate(list, slotID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot vacated",
		zap.String("yard_id", yardID),
		zap.String("slot_id", slotID),
	)

	s.publish(ctx, events.NewSlotEvent(events.SlotVacated, yardID, slotID, nil))
	return updated, nil
}

// update runs resolve → mutate → save under s.mu. The returned list is owned by the caller.
func (s *YardService) update(ctx context.Context, yardID, slotID, op string, mutate func([]models.Slot) ([]models.Slot, error)) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := mutate(s.store.Resolve(ctx, yardID))
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSlots(ctx, yardID, updated); err != nil {
		s.logger.Error("Failed to persist "+op,
			zap.String("yard_id", yardID),
			zap.String("slot_id", slotID),
			zap.Error(err),
		)
		return nil, err
	}
	return updated, nil
}

// publish is best effort: the slot change is already durable. It runs without s.mu
// so a slow broker only delays the request that triggered it.
func (s *YardService) publish(ctx context.Context, e events.SlotEvent) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to publish slot event",
			zap.String("event_id", e.EventID),
			zap.String("type", string(e.Type)),
			zap.Error(err),
		)
	}
}
