package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/config"
	"github.com/vcm-medical/vcmclient/internal/infrastructure/auth"
	"github.com/vcm-medical/vcmclient/internal/infrastructure/gateway"
	"github.com/vcm-medical/vcmclient/internal/infrastructure/storage"
	"github.com/vcm-medical/vcmclient/internal/services"
	"github.com/vcm-medical/vcmclient/internal/util"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	RedisClient *redis.Client
	Store       domain.SessionStore
	Gateway     domain.Gateway

	// Services
	Tokens      *services.TokenHolder
	SessionCtrl *services.SessionController
	LocationSvc *services.LocationService
}

// NewContainer creates and wires all dependencies. Restore is not
// called here; the composing application decides when (before first
// render, per the session contract).
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := util.NewLogger(cfg.LogEnvironment, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	container := &Container{Config: cfg, Logger: logger}

	if err := container.initStore(); err != nil {
		return nil, err
	}
	container.initServices()

	return container, nil
}

func (c *Container) initStore() error {
	switch c.Config.StorageBackend {
	case "redis":
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		c.Store = storage.NewRedisStore(c.RedisClient, c.Config.StorageNamespace)
	default:
		store, err := storage.NewFileStore(c.Config.StoragePath, c.Config.StorageNamespace)
		if err != nil {
			return err
		}
		c.Store = store
	}
	return nil
}

func (c *Container) initServices() {
	c.Tokens = services.NewTokenHolder()

	// The unauthorized hook closes over the container so the gateway can
	// trigger a forced logout without knowing the controller exists.
	c.Gateway = gateway.NewClient(
		c.Config.BaseURL,
		c.Config.RequestTimeout,
		c.Tokens,
		c.Logger.Named("gateway"),
		func() {
			if c.SessionCtrl != nil {
				c.SessionCtrl.ForceLogout(context.Background())
			}
		},
	)

	c.SessionCtrl = services.NewSessionController(
		c.Gateway,
		c.Store,
		c.Tokens,
		auth.NewJWTInspector(),
		NewLogSink(c.Logger.Named("events")),
		c.Logger.Named("session"),
		c.Config.AuthFlow,
	)
	c.LocationSvc = services.NewLocationService(c.Gateway, c.Logger.Named("location"))
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return err
		}
	}
	_ = c.Logger.Sync()
	return nil
}
