package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"patio-slots/internal/backend"
	"patio-slots/internal/models"
	"patio-slots/internal/service"

	"go.uber.org/zap"
)

const unitsPath = "/api/v1/units"

// UnitService is the unit administration the handler proxies to.
type UnitService interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	CreateUnit(ctx context.Context, u models.Unit) (models.Unit, error)
	UpdateUnit(ctx context.Context, id int64, u models.Unit) (models.Unit, error)
	DeleteUnit(ctx context.Context, id int64) error
}

// UnitHandler serves unit administration.
type UnitHandler struct {
	svc    UnitService
	logger *zap.Logger
}

func NewUnitHandler(svc UnitService, logger *zap.Logger) *UnitHandler {
	return &UnitHandler{
		svc:    svc,
		logger: logger,
	}
}

func (h *UnitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == unitsPath && r.Method == http.MethodGet:
		h.ListUnits(w, r)
	case r.URL.Path == unitsPath && r.Method == http.MethodPost:
		h.CreateUnit(w, r)
	case strings.HasPrefix(r.URL.Path, unitsPath+"/") && r.Method == http.MethodPut:
		h.UpdateUnit(w, r)
	case strings.HasPrefix(r.URL.Path, unitsPath+"/") && r.Method == http.MethodDelete:
		h.DeleteUnit(w, r)
	case r.URL.Path == unitsPath || strings.HasPrefix(r.URL.Path, unitsPath+"/"):
		w.WriteHeader(http.StatusMethodNotAllowed)
	default:
		writeJSON(w, http.StatusNotFound, Fail("not found"))
	}
}

func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.ListUnits(r.Context())
	if err != nil {
		h.writeError(w, "ListUnits", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(units))
}

func (h *UnitHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var u models.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	created, err := h.svc.CreateUnit(r.Context(), u)
	if err != nil {
		h.writeError(w, "CreateUnit", err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(created))
}

func (h *UnitHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := unitIDFromPath(w, r)
	if !ok {
		return
	}

	var u models.Unit
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	updated, err := h.svc.UpdateUnit(r.Context(), id, u)
	if err != nil {
		h.writeError(w, "UpdateUnit", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(updated))
}

func (h *UnitHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := unitIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteUnit(r.Context(), id); err != nil {
		h.writeError(w, "DeleteUnit", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int64{"id": id}))
}

// unitIDFromPath parses the positive id after /api/v1/units/.
func unitIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, unitsPath+"/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, Fail("invalid unit id"))
		return 0, false
	}
	return id, true
}

func (h *UnitHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUnit):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, backend.ErrUnitNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("unit backend unavailable"))
	}
}
