package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	reqcache "go-reqcache"
	"go-reqcache/internal/httpserver"
)

// CompositionRoot holds all daemon dependencies and wires them together
// in one place, so every component receives its collaborators explicitly.
type CompositionRoot struct {
	Config *reqcache.Config
	Logger *zap.Logger
	Client *reqcache.Client
	Server *httpserver.Server
}

// NewCompositionRoot creates and initializes all daemon dependencies:
// logger first, then configuration, then the cache client, then the
// admin server on top of it.
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initClient(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache client: %w", err)
	}

	root.Server = httpserver.NewServer(root.Client, root.Logger)
	return root, nil
}

// initLogger initializes the daemon logger.
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the daemon configuration. Without a config file the
// defaults apply.
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("REQCACHE_CONFIG_FILE")
	if configPath == "" {
		r.Logger.Info("No config file set, using defaults")
		r.Config = reqcache.DefaultConfig()
		return nil
	}

	cfg, err := reqcache.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initClient builds the cache client from the configuration.
func (r *CompositionRoot) initClient() error {
	client, err := reqcache.New(r.Config, r.Logger)
	if err != nil {
		return err
	}
	r.Client = client
	return nil
}

// Cleanup releases daemon resources.
func (r *CompositionRoot) Cleanup() error {
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
	return nil
}
