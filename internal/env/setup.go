// Package environment assembles the application: config, logger, clients,
// services, servers and workers, in dependency order.
package environment

import (
	"context"
	"log/slog"

	"gatebot/internal/config"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
)

type closer func()

type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Clients  *Clients
	Services *Services
	Servers  *Servers

	Closers []closer
}

func Setup(ctx context.Context) (*Env, error) {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg config.Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, errors.Wrap(err, "env processing")
	}

	logger := initLogger(cfg)

	clients, err := newClients(ctx, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init clients")
	}

	services, err := newServices(ctx, clients, &cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init services")
	}

	servers := newServers(cfg, clients)

	return &Env{
		Config:   &cfg,
		Logger:   logger,
		Clients:  clients,
		Services: services,
		Servers:  servers,
		Closers: []closer{
			func() { _ = clients.SQLiteDB.Close() },
		},
	}, nil
}
