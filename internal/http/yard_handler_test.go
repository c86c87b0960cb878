package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patio-slots/internal/models"
	"patio-slots/internal/service"
	"patio-slots/internal/slots"
	"patio-slots/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type brokenKV struct{ *store.MemoryKV }

func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func newTestRouter(kv store.KV) *Router {
	logger := zap.NewNop()
	svc := service.NewYardService(slots.NewStore(kv, "", logger), nil, nil, logger)

	router := NewRouter(logger)
	router.RegisterYardRoutes(NewYardHandler(svc, logger))
	router.RegisterHealth()
	return router
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSlots(t *testing.T, rec *httptest.ResponseRecorder) []models.Slot {
	t.Helper()
	var res Result[[]models.Slot]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ResultSuccess, res.Code)
	return res.Result
}

func TestYardHandler_ListYards(t *testing.T) {
	rec := do(t, newTestRouter(store.NewMemoryKV()), http.MethodGet, "/api/v1/yards", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result[[]models.Yard]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, slots.SeedYards(), res.Result)
}

func TestYardHandler_ListSlots(t *testing.T) {
	router := newTestRouter(store.NewMemoryKV())

	rec := do(t, router, http.MethodGet, "/api/v1/yards/p1/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	want, _ := slots.Seed("p1")
	assert.Equal(t, want, decodeSlots(t, rec))

	rec = do(t, router, http.MethodGet, "/api/v1/yards/999/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":[]`)
}

func TestYardHandler_AssignAndVacate(t *testing.T) {
	router := newTestRouter(store.NewMemoryKV())

	rec := do(t, router, http.MethodPut, "/api/v1/yards/p1/slots/A2",
		`{"brand":"Honda","plate":"ABC-1234","color":"Red","model":"CG160"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeSlots(t, rec)
	assert.Equal(t, models.Slot{ID: "A2", Occupied: true, Brand: "Honda", Plate: "ABC-1234", Color: "Red", Model: "CG160"}, got[1])

	rec = do(t, router, http.MethodGet, "/api/v1/yards/p1/slots/available", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, s := range decodeSlots(t, rec) {
		assert.NotEqual(t, "A2", s.ID)
	}

	rec = do(t, router, http.MethodDelete, "/api/v1/yards/p1/slots/A2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FreeSlot("A2"), decodeSlots(t, rec)[1])
}

func TestYardHandler_MutationErrors(t *testing.T) {
	router := newTestRouter(store.NewMemoryKV())

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown slot", http.MethodDelete, "/api/v1/yards/p1/slots/Z9", "", http.StatusNotFound},
		{"occupied slot", http.MethodPut, "/api/v1/yards/p1/slots/A1", `{"brand":"a","plate":"b","color":"c","model":"d"}`, http.StatusConflict},
		{"free slot vacate", http.MethodDelete, "/api/v1/yards/p1/slots/A2", "", http.StatusConflict},
		{"missing fields", http.MethodPut, "/api/v1/yards/p1/slots/A2", `{"brand":"Honda"}`, http.StatusBadRequest},
		{"bad json", http.MethodPut, "/api/v1/yards/p1/slots/A2", `{`, http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/api/v1/yards/p1/slots", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/v1/yards/p1/nothing", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestYardHandler_SaveFailure(t *testing.T) {
	router := newTestRouter(brokenKV{store.NewMemoryKV()})

	rec := do(t, router, http.MethodDelete, "/api/v1/yards/p1/slots/A1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to save slots")
}

func TestYardHandler_Summary(t *testing.T) {
	rec := do(t, newTestRouter(store.NewMemoryKV()), http.MethodGet, "/api/v1/yards/p2/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result[models.YardSummary]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, models.YardSummary{YardID: "p2", Total: 6, Occupied: 3, Free: 3}, res.Result)
}

func TestYardHandler_Export(t *testing.T) {
	rec := do(t, newTestRouter(store.NewMemoryKV()), http.MethodGet, "/api/v1/yards/p1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "slots_p1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Slots")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, SlotExportHeader, rows[0])
	assert.Equal(t, []string{"A1", "occupied", "Honda", "ABC-1234", "Vermelho", "CG 160"}, rows[1])
	assert.Equal(t, []string{"A2", "free"}, rows[2])
}

func TestYardHandler_ExportQuotesFilename(t *testing.T) {
	rec := do(t, newTestRouter(store.NewMemoryKV()), http.MethodGet, "/api/v1/yards/a%22b;%20x/export", "")
	require.Equal(t, http.StatusOK, rec.Code)

	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `slots_a"b; x.xlsx`, params["filename"])
}

func TestRouter_Health(t *testing.T) {
	rec := do(t, newTestRouter(store.NewMemoryKV()), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
