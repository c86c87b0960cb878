package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"patio-slots/internal/models"
	"patio-slots/internal/slots"

	"go.uber.org/zap"
)

const yardsPath = "/api/v1/yards"

// YardService is what the handler needs from the service layer.
type YardService interface {
	Yards(ctx context.Context) []models.Yard
	Slots(ctx context.Context, yardID string) []models.Slot
	AvailableSlots(ctx context.Context, yardID string) []models.Slot
	Summary(ctx context.Context, yardID string) models.YardSummary
	AssignVehicle(ctx context.Context, yardID, slotID string, v models.Vehicle) ([]models.Slot, error)
	VacateSlot(ctx context.Context, yardID, slotID string) ([]models.Slot, error)
}

// YardHandler serves the yard and slot endpoints.
type YardHandler struct {
	svc    YardService
	logger *zap.Logger
}

func NewYardHandler(svc YardService, logger *zap.Logger) *YardHandler {
	return &YardHandler{
		svc:    svc,
		logger: logger,
	}
}

// ServeHTTP dispatches on the path below /api/v1/yards.
//
//	GET    /api/v1/yards
//	GET    /api/v1/yards/{yard}/slots
//	GET    /api/v1/yards/{yard}/slots/available
//	PUT    /api/v1/yards/{yard}/slots/{slot}
//	DELETE /api/v1/yards/{yard}/slots/{slot}
//	GET    /api/v1/yards/{yard}/summary
//	GET    /api/v1/yards/{yard}/export
func (h *YardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, yardsPath), "/")
	var parts []string
	if rest != "" {
		parts = strings.Split(rest, "/")
	}

	switch {
	case len(parts) == 0:
		h.only(w, r, http.MethodGet, h.ListYards)
	case len(parts) == 2 && parts[1] == "slots":
		h.only(w, r, http.MethodGet, func(w http.ResponseWriter, r *http.Request) { h.ListSlots(w, r, parts[0]) })
	case len(parts) == 3 && parts[1] == "slots" && parts[2] == "available" && r.Method == http.MethodGet:
		h.ListAvailable(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "slots" && r.Method == http.MethodPut:
		h.AssignVehicle(w, r, parts[0], parts[2])
	case len(parts) == 3 && parts[1] == "slots" && r.Method == http.MethodDelete:
		h.VacateSlot(w, r, parts[0], parts[2])
	case len(parts) == 3 && parts[1] == "slots":
		w.WriteHeader(http.StatusMethodNotAllowed)
	case len(parts) == 2 && parts[1] == "summary":
		h.only(w, r, http.MethodGet, func(w http.ResponseWriter, r *http.Request) { h.Summary(w, r, parts[0]) })
	case len(parts) == 2 && parts[1] == "export":
		h.only(w, r, http.MethodGet, func(w http.ResponseWriter, r *http.Request) { h.Export(w, r, parts[0]) })
	default:
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	}
}

func (h *YardHandler) only(w http.ResponseWriter, r *http.Request, method string, next http.HandlerFunc) {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	next(w, r)
}

func (h *YardHandler) ListYards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Yards(r.Context())))
}

func (h *YardHandler) ListSlots(w http.ResponseWriter, r *http.Request, yardID string) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Slots(r.Context(), yardID)))
}

func (h *YardHandler) ListAvailable(w http.ResponseWriter, r *http.Request, yardID string) {
	writeJSON(w, http.StatusOK, Ok(h.svc.AvailableSlots(r.Context(), yardID)))
}

func (h *YardHandler) Summary(w http.ResponseWriter, r *http.Request, yardID string) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Summary(r.Context(), yardID)))
}

func (h *YardHandler) AssignVehicle(w http.ResponseWriter, r *http.Request, yardID, slotID string) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	updated, err := h.svc.AssignVehicle(r.Context(), yardID, slotID, v)
	if err != nil {
		h.writeMutationError(w, err, yardID, slotID)
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func (h *YardHandler) VacateSlot(w http.ResponseWriter, r *http.Request, yardID, slotID string) {
	updated, err := h.svc.VacateSlot(r.Context(), yardID, slotID)
	if err != nil {
		h.writeMutationError(w, err, yardID, slotID)
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func (h *YardHandler) Export(w http.ResponseWriter, r *http.Request, yardID string) {
	data, err := GenerateSlotExport(yardID, h.svc.Slots(r.Context(), yardID))
	if err != nil {
		h.logger.Error("Failed to generate slot export", zap.String("yard_id", yardID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "slots_" + yardID + ".xlsx",
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *YardHandler) writeMutationError(w http.ResponseWriter, err error, yardID, slotID string) {
	switch {
	case errors.Is(err, slots.ErrSlotNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	case errors.Is(err, slots.ErrSlotOccupied), errors.Is(err, slots.ErrSlotFree):
		writeJSON(w, http.StatusConflict, Fail(err.Error()))
	case errors.Is(err, slots.ErrIncompleteVehicle):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	default:
		h.logger.Error("Slot update failed",
			zap.String("yard_id", yardID),
			zap.String("slot_id", slotID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to save slots"))
	}
}
