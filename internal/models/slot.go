package models

import "strings"

// SlotState is the occupancy state of a parking slot.
type SlotState string

const (
	SlotFree     SlotState = "free"
	SlotOccupied SlotState = "occupied"
)

// Vehicle describes the motorcycle parked in a slot.
type Vehicle struct {
	Brand string `json:"brand"`
	Plate string `json:"plate"`
	Color string `json:"color"`
	Model string `json:"model"`
}

// Complete reports whether all four attributes are non-blank.
func (v Vehicle) Complete() bool {
	return strings.TrimSpace(v.Brand) != "" &&
		strings.TrimSpace(v.Plate) != "" &&
		strings.TrimSpace(v.Color) != "" &&
		strings.TrimSpace(v.Model) != ""
}

// Trimmed returns v with surrounding whitespace removed from every field.
func (v Vehicle) Trimmed() Vehicle {
	return Vehicle{
		Brand: strings.TrimSpace(v.Brand),
		Plate: strings.TrimSpace(v.Plate),
		Color: strings.TrimSpace(v.Color),
		Model: strings.TrimSpace(v.Model),
	}
}

// Slot is one parking space of a yard. Vehicle attributes are only present
// while Occupied is true; omitempty keeps them out of the persisted form otherwise.
type Slot struct {
	ID       string `json:"id"`
	Occupied bool   `json:"occupied"`
	Brand    string `json:"brand,omitempty"`
	Plate    string `json:"plate,omitempty"`
	Color    string `json:"color,omitempty"`
	Model    string `json:"model,omitempty"`
}

// FreeSlot returns an unoccupied slot with no vehicle attributes.
func FreeSlot(id string) Slot {
	return Slot{ID: id}
}

// OccupiedSlot returns a slot holding v.
func OccupiedSlot(id string, v Vehicle) Slot {
	return Slot{
		ID:       id,
		Occupied: true,
		Brand:    v.Brand,
		Plate:    v.Plate,
		Color:    v.Color,
		Model:    v.Model,
	}
}

// State returns the slot's occupancy state.
func (s Slot) State() SlotState {
	if s.Occupied {
		return SlotOccupied
	}
	return SlotFree
}

// Vehicle returns the parked vehicle, or false when the slot is free.
func (s Slot) Vehicle() (Vehicle, bool) {
	if !s.Occupied {
		return Vehicle{}, false
	}
	return Vehicle{Brand: s.Brand, Plate: s.Plate, Color: s.Color, Model: s.Model}, true
}

// Normalized enforces the free-slot invariant: a free slot carries no vehicle data.
func (s Slot) Normalized() Slot {
	if s.Occupied {
		return s
	}
	return FreeSlot(s.ID)
}

// CloneSlots returns an independent copy of list. A nil list yields an empty, non-nil slice.
func CloneSlots(list []Slot) []Slot {
	out := make([]Slot, len(list))
	copy(out, list)
	return out
}

// Yard is a parking lot shown in the catalog.
type Yard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// YardSummary counts slots by state.
type YardSummary struct {
	YardID   string `json:"yard_id"`
	Total    int    `json:"total"`
	Occupied int    `json:"occupied"`
	Free     int    `json:"free"`
}

// Summarize counts the slots of yardID.
func Summarize(yardID string, list []Slot) YardSummary {
	sum := YardSummary{YardID: yardID, Total: len(list)}
	for _, s := range list {
		if s.Occupied {
			sum.Occupied++
		}
	}
	sum.Free = sum.Total - sum.Occupied
	return sum
}
