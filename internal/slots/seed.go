package slots

import "patio-slots/internal/models"

// seedYards is the default catalog, in display order.
var seedYards = []models.Yard{
	{ID: "p1", Name: "Pátio Central"},
	{ID: "p2", Name: "Pátio Norte"},
	{ID: "p3", Name: "Pátio Sul"},
}

func occupied(id, brand, plate, color, model string) models.Slot {
	return models.OccupiedSlot(id, models.Vehicle{Brand: brand, Plate: plate, Color: color, Model: model})
}

// seedSlots holds the slot lists used before a yard has ever been saved.
// Never hand these slices out directly; Seed copies them.
var seedSlots = map[string][]models.Slot{
	"p1": {
		occupied("A1", "Honda", "ABC-1234", "Vermelho", "CG 160"),
		models.FreeSlot("A2"),
		occupied("B1", "Yamaha", "XYZ-5678", "Preto", "YZF R3"),
		models.FreeSlot("B2"),
		occupied("C1", "Suzuki", "JKL-9012", "Azul", "GSX-S750"),
		models.FreeSlot("C2"),
	},
	"p2": {
		occupied("D1", "Ducati", "DUC-2025", "Branco", "Panigale V4"),
		occupied("D2", "Kawasaki", "KAW-4455", "Verde", "Ninja ZX-10R"),
		models.FreeSlot("E1"),
		models.FreeSlot("E2"),
		occupied("F1", "BMW", "BMW-7890", "Preto", "S1000RR"),
		models.FreeSlot("F2"),
	},
	"p3": {
		models.FreeSlot("G1"),
		models.FreeSlot("G2"),
		occupied("H1", "Triumph", "TRI-3333", "Azul", "Street Triple"),
		occupied("H2", "Harley", "HAR-6666", "Preto", "Iron 883"),
		models.FreeSlot("I1"),
		occupied("I2", "KTM", "KTM-1111", "Laranja", "Duke 390"),
	},
}

// Seed returns a copy of the default slot list for yardID. Matching is exact:
// "1" does not resolve to "p1".
func Seed(yardID string) ([]models.Slot, bool) {
	list, ok := seedSlots[yardID]
	if !ok {
		return nil, false
	}
	return models.CloneSlots(list), true
}

// SeedYards returns the default yard catalog.
func SeedYards() []models.Yard {
	out := make([]models.Yard, len(seedYards))
	copy(out, seedYards)
	return out
}
