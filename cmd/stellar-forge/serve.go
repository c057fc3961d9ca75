package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"stellar-forge/internal/api"
	"stellar-forge/internal/cache"
	"stellar-forge/internal/catalog"
	"stellar-forge/internal/netmap"
	"stellar-forge/internal/shared/config"
	"stellar-forge/internal/shared/logger"
	"stellar-forge/internal/storage"
)

// server holds everything serve opens, so it can be closed in one place.
type server struct {
	cfg     *config.Config
	logger  *slog.Logger
	archive *storage.Storage
	cache   *cache.Cache
	api     *api.API
}

func newServer(cfg *config.Config, log *slog.Logger) (*server, error) {
	archive, err := storage.NewStorage(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	srv := &server{cfg: cfg, logger: log, archive: archive}

	opts := []catalog.Option{
		catalog.WithLogger(log),
		catalog.WithWorkers(cfg.Generation.Workers),
		catalog.WithMaxBatch(cfg.Generation.MaxBatch),
	}
	if cfg.Cache.Enabled {
		c, err := cache.Open(cache.Config{Dir: cfg.Cache.Dir, TTL: cfg.Cache.TTL, Logger: log})
		if err != nil {
			archive.Close()
			return nil, err
		}
		srv.cache = c
		opts = append(opts, catalog.WithCache(c))
	}

	svc := catalog.NewService(archive, opts...)
	srv.api = api.NewAPI(svc, api.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit: api.RateLimitConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
		},
		Logger:       log,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
	return srv, nil
}

func (s *server) Close() error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	errs = append(errs, s.archive.Close())
	return errors.Join(errs...)
}

// mapPort forwards the listen port through the local gateway. Failure is
// logged and the server keeps running on the LAN.
func (s *server) mapPort(ctx context.Context, discover netmap.DiscoverFunc) *netmap.Mapping {
	_, portStr, err := net.SplitHostPort(s.cfg.Server.Address)
	if err != nil {
		s.logger.Warn("Cannot map port", "address", s.cfg.Server.Address, "error", err)
		return nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		s.logger.Warn("Cannot map port", "address", s.cfg.Server.Address, "error", err)
		return nil
	}

	m, err := netmap.Map(ctx, netmap.Config{Port: port, Lease: s.cfg.NAT.Lease}, discover, s.logger)
	if err != nil {
		s.logger.Warn("Port mapping unavailable, serving on the local network only", "error", err)
		return nil
	}
	s.logger.Info("Reachable externally", "address", m.Address(), "protocol", m.Protocol())
	return m
}

func newServeCmd() *cobra.Command {
	var (
		address string
		nat     bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP catalog server",
		Long: `Serve reads configuration from the environment (and .env when present),
opens the archive and cache, and serves the catalog API until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}
			if cmd.Flags().Changed("nat") {
				cfg.NAT.Enabled = nat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.New(cfg.Logging)
			srv, err := newServer(cfg, log)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.NAT.Enabled {
				if m := srv.mapPort(ctx, nil); m != nil {
					defer m.Close()
				}
			}

			log.Info("Catalog server ready",
				"address", cfg.Server.Address,
				"driver", cfg.Storage.Driver,
				"cache", cfg.Cache.Enabled,
			)
			return srv.api.Start(ctx, cfg.Server.Address)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address, overrides SERVER_ADDRESS")
	cmd.Flags().BoolVar(&nat, "nat", false, "Forward the port with UPnP/NAT-PMP, overrides NAT_ENABLED")
	return cmd
}
