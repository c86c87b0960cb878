package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Router uses the standard ServeMux; the route table is small and fixed.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

// RegisterYardRoutes mounts the yard API under /api/v1/yards.
func (r *Router) RegisterYardRoutes(h *YardHandler) {
	r.HandleHandler("/api/v1/yards", h)
	r.HandleHandler("/api/v1/yards/", h)
}

// RegisterUnitRoutes mounts unit administration under /api/v1/units.
func (r *Router) RegisterUnitRoutes(h *UnitHandler) {
	r.HandleHandler("/api/v1/units", h)
	r.HandleHandler("/api/v1/units/", h)
}

// RegisterHealth mounts /healthz.
func (r *Router) RegisterHealth() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	r.mux.ServeHTTP(rec, req)

	r.logger.Debug("HTTP request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}
