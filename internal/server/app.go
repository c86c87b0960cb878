package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"patio-slots/internal/backend"
	"patio-slots/internal/common/database"
	"patio-slots/internal/common/mqtt"
	redisx "patio-slots/internal/common/redis"
	"patio-slots/internal/config"
	"patio-slots/internal/events"
	httpapi "patio-slots/internal/http"
	"patio-slots/internal/service"
	"patio-slots/internal/slots"
	"patio-slots/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// App owns every connection the service opens and the HTTP server on top of them.
type App struct {
	config *config.Config
	logger *zap.Logger

	db          *sql.DB
	redisClient *redis.Client
	mqttClient  *mqtt.Client

	yards  *service.YardService
	server *http.Server
}

// NewApp connects the configured backends and builds the HTTP server.
// Connections opened before a failure are closed again.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	app := &App{config: cfg, logger: logger}
	defer func() {
		if err != nil {
			app.closeConnections()
		}
	}()

	if cfg.NeedsRedis() {
		if app.redisClient, err = redisx.Connect(ctx, &cfg.Redis); err != nil {
			return nil, err
		}
	}

	kv, err := app.buildKV(ctx)
	if err != nil {
		return nil, err
	}

	publisher, err := app.buildPublisher()
	if err != nil {
		return nil, err
	}

	var (
		catalog service.YardCatalog
		fleet   *backend.Client
	)
	if cfg.Backend.BaseURL != "" {
		fleet = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, logger)
		catalog = fleet
	}

	slotStore := slots.NewStore(kv, cfg.Slots.KeyPrefix, logger)
	app.yards = service.NewYardService(slotStore, catalog, publisher, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterYardRoutes(httpapi.NewYardHandler(app.yards, logger))
	if fleet != nil {
		router.RegisterUnitRoutes(httpapi.NewUnitHandler(service.NewUnitService(fleet, logger), logger))
	}
	router.RegisterHealth()

	app.server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Application wired",
		zap.String("slots_backend", cfg.Slots.Backend),
		zap.String("key_prefix", cfg.Slots.KeyPrefix),
		zap.Bool("mqtt_events", cfg.Events.MQTTEnabled),
		zap.String("event_stream", cfg.Events.Stream),
		zap.Bool("fleet_backend", fleet != nil),
	)
	return app, nil
}

func (a *App) buildKV(ctx context.Context) (store.KV, error) {
	switch a.config.Slots.Backend {
	case config.BackendRedis:
		return store.NewRedisKV(a.redisClient), nil
	case config.BackendPostgres:
		db, err := database.Open(ctx, &a.config.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		kv := store.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	default:
		a.logger.Warn("Using in-memory slot storage; slot changes are lost on restart")
		return store.NewMemoryKV(), nil
	}
}

func (a *App) buildPublisher() (events.Publisher, error) {
	var pubs events.MultiPublisher

	if a.config.Events.MQTTEnabled {
		client, err := mqtt.NewClient(&a.config.MQTT)
		if err != nil {
			return nil, err
		}
		a.mqttClient = client
		pubs = append(pubs, events.NewMQTTPublisher(client, a.config.Events.TopicPrefix, client.QoS()))
	}
	if a.config.Events.Stream != "" {
		pubs = append(pubs, events.NewStreamPublisher(a.redisClient, a.config.Events.Stream, a.config.Events.StreamMaxLen))
	}

	if len(pubs) == 0 {
		return events.NopPublisher{}, nil
	}
	return pubs, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Start serves HTTP until ctx is cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Stop shuts the HTTP server down and closes every connection.
func (a *App) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(a.config.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.closeConnections()
	return err
}

func (a *App) closeConnections() {
	if a.mqttClient != nil {
		a.mqttClient.Disconnect()
		a.mqttClient = nil
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
		a.redisClient = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
		a.db = nil
	}
}
