package slots_test

import (
	"encoding/json"
	"testing"

	"patio-slots/internal/models"
	"patio-slots/internal/slots"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cg160 = models.Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}

func TestAssign_FreeSlot(t *testing.T) {
	list := sampleList()
	before := models.CloneSlots(list)

	got, err := slots.Assign(list, "A2", cg160)
	require.NoError(t, err)

	assert.Equal(t, models.Slot{ID: "A2", Occupied: true, Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}, got[1])
	assert.Equal(t, before[0], got[0])
	assert.Equal(t, before[2], got[2])
	assert.Equal(t, before, list, "input list must not be mutated")
}

func TestAssign_TrimsAttributes(t *testing.T) {
	got, err := slots.Assign(sampleList(), "A2", models.Vehicle{Brand: " Honda ", Plate: "ABC-1234 ", Color: "Red", Model: "CG160"})
	require.NoError(t, err)
	assert.Equal(t, "Honda", got[1].Brand)
	assert.Equal(t, "ABC-1234", got[1].Plate)
}

func TestAssign_Errors(t *testing.T) {
	list := sampleList()

	_, err := slots.Assign(list, "Z9", cg160)
	assert.ErrorIs(t, err, slots.ErrSlotNotFound)

	_, err = slots.Assign(list, "A1", cg160)
	assert.ErrorIs(t, err, slots.ErrSlotOccupied)

	_, err = slots.Assign(list, "A2", models.Vehicle{Brand: "Honda", Plate: "ABC-1234", Color: "Red"})
	assert.ErrorIs(t, err, slots.ErrIncompleteVehicle)

	assert.Equal(t, sampleList(), list)
}

func TestVacate_OccupiedSlot(t *testing.T) {
	list := sampleList()
	before := models.CloneSlots(list)

	got, err := slots.Vacate(list, "A1")
	require.NoError(t, err)

	assert.Equal(t, models.FreeSlot("A1"), got[0])
	assert.Equal(t, before[1:], got[1:])
	assert.Equal(t, before, list, "input list must not be mutated")

	raw, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"A1","occupied":false}`, string(raw))
}

func TestVacate_Errors(t *testing.T) {
	_, err := slots.Vacate(sampleList(), "Z9")
	assert.ErrorIs(t, err, slots.ErrSlotNotFound)

	_, err = slots.Vacate(sampleList(), "A2")
	assert.ErrorIs(t, err, slots.ErrSlotFree)
}

func TestAssignThenVacate(t *testing.T) {
	assigned, err := slots.Assign(sampleList(), "B1", cg160)
	require.NoError(t, err)

	vacated, err := slots.Vacate(assigned, "B1")
	require.NoError(t, err)
	assert.Equal(t, sampleList(), vacated)
}

func TestAvailable(t *testing.T) {
	got := slots.Available(sampleList())
	assert.Equal(t, []models.Slot{models.FreeSlot("A2"), models.FreeSlot("B1")}, got)

	assert.NotNil(t, slots.Available(nil))
}

func TestFind(t *testing.T) {
	s, ok := slots.Find(sampleList(), "A1")
	assert.True(t, ok)
	assert.True(t, s.Occupied)

	_, ok = slots.Find(sampleList(), "nope")
	assert.False(t, ok)
}
