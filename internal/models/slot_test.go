package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_FreeSlotOmitsVehicleFields(t *testing.T) {
	raw, err := json.Marshal(FreeSlot("A2"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"A2","occupied":false}`, string(raw))
}

func TestSlot_Normalized(t *testing.T) {
	stale := Slot{ID: "B1", Occupied: false, Brand: "Yamaha", Plate: "XYZ-5678"}
	assert.Equal(t, FreeSlot("B1"), stale.Normalized())

	occ := OccupiedSlot("B2", Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"})
	assert.Equal(t, occ, occ.Normalized())
}

func TestSlot_Vehicle(t *testing.T) {
	v := Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}

	got, ok := OccupiedSlot("A1", v).Vehicle()
	assert.True(t, ok)
	assert.Equal(t, v, got)
	assert.Equal(t, SlotOccupied, OccupiedSlot("A1", v).State())

	_, ok = FreeSlot("A1").Vehicle()
	assert.False(t, ok)
	assert.Equal(t, SlotFree, FreeSlot("A1").State())
}

func TestVehicle_Complete(t *testing.T) {
	assert.True(t, Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}.Complete())
	assert.False(t, Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red"}.Complete())
	assert.False(t, Vehicle{Brand: " ", Plate: "ABC-1234", Color: "Red", Model: "CG160"}.Complete())
}

func TestCloneSlots(t *testing.T) {
	orig := []Slot{FreeSlot("A1")}
	cp := CloneSlots(orig)
	cp[0].Occupied = true
	assert.False(t, orig[0].Occupied)

	assert.NotNil(t, CloneSlots(nil))
	assert.Len(t, CloneSlots(nil), 0)
}

func TestSummarize(t *testing.T) {
	list := []Slot{
		OccupiedSlot("A1", Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}),
		FreeSlot("A2"),
		FreeSlot("A3"),
	}
	assert.Equal(t, YardSummary{YardID: "p1", Total: 3, Occupied: 1, Free: 2}, Summarize("p1", list))
}
