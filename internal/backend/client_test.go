package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"patio-slots/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListYards(t *testing.T) {
	var gotAuth string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/yards", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Pátio Butantã"},{"id":2,"nome":"Pátio Lapa"}]`))
	})

	c := NewClient(srv.URL+"/api", "tok-123", zap.NewNop())
	yards, err := c.ListYards(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, []models.Yard{
		{ID: "1", Name: "Pátio Butantã"},
		{ID: "2", Name: "Pátio Lapa"},
	}, yards)
}

func TestClient_ListYards_NoTokenNoHeader(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	yards, err := NewClient(srv.URL, "", zap.NewNop()).ListYards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, yards)
}

func TestClient_ListYards_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := NewClient(srv.URL, "expired", zap.NewNop()).ListYards(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
