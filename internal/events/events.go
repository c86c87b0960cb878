package events

import (
	"context"
	"errors"
	"time"

	"patio-slots/internal/models"

	"github.com/google/uuid"
)

// EventType names a slot transition.
type EventType string

const (
	SlotAssigned EventType = "slot.assigned"
	SlotVacated  EventType = "slot.vacated"
)

// SlotEvent is broadcast after a transition has been persisted.
type SlotEvent struct {
	EventID    string          `json:"event_id"`
	Type       EventType       `json:"type"`
	YardID     string          `json:"yard_id"`
	SlotID     string          `json:"slot_id"`
	Vehicle    *models.Vehicle `json:"vehicle,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewSlotEvent stamps a new event. v is only kept for assignments.
func NewSlotEvent(t EventType, yardID, slotID string, v *models.Vehicle) SlotEvent {
	if t != SlotAssigned {
		v = nil
	}
	return SlotEvent{
		EventID:    uuid.NewString(),
		Type:       t,
		YardID:     yardID,
		SlotID:     slotID,
		Vehicle:    v,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers slot events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e SlotEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SlotEvent) error { return nil }

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, e SlotEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
