package slots

import (
	"errors"
	"fmt"

	"patio-slots/internal/models"
)

var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotOccupied      = errors.New("slot already occupied")
	ErrSlotFree          = errors.New("slot is not occupied")
	ErrIncompleteVehicle = errors.New("brand, plate, color and model are required")
)

func indexOf(list []models.Slot, slotID string) int {
	for i, s := range list {
		if s.ID == slotID {
			return i
		}
	}
	return -1
}

// Assign returns a copy of list where slotID holds v. Only a free slot can be assigned
// and every vehicle attribute must be non-blank. list itself is left untouched.
func Assign(list []models.Slot, slotID string, v models.Vehicle) ([]models.Slot, error) {
	i := indexOf(list, slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	if list[i].Occupied {
		return nil, fmt.Errorf("%w: %s", ErrSlotOccupied, slotID)
	}
	if !v.Complete() {
		return nil, ErrIncompleteVehicle
	}

	out := models.CloneSlots(list)
	out[i] = models.OccupiedSlot(slotID, v.Trimmed())
	return out, nil
}

// Vacate returns a copy of list where slotID is free and carries no vehicle data.
// list itself is left untouched.
func Vacate(list []models.Slot, slotID string) ([]models.Slot, error) {
	i := indexOf(list, slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	if !list[i].Occupied {
		return nil, fmt.Errorf("%w: %s", ErrSlotFree, slotID)
	}

	out := models.CloneSlots(list)
	out[i] = models.FreeSlot(slotID)
	return out, nil
}

// Available returns the free slots of list in order.
func Available(list []models.Slot) []models.Slot {
	out := []models.Slot{}
	for _, s := range list {
		if !s.Occupied {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the slot with slotID.
func Find(list []models.Slot, slotID string) (models.Slot, bool) {
	if i := indexOf(list, slotID); i >= 0 {
		return list[i], true
	}
	return models.Slot{}, false
}
