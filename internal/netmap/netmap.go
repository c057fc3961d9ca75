// Package netmap forwards the API port through a home router with UPnP or
// NAT-PMP so a catalog server behind NAT is reachable from outside.
package netmap

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/libp2p/go-nat"

	apperrors "stellar-forge/internal/shared/errors"
)

const (
	defaultDescription = "stellar-forge catalog"
	defaultLease       = 2 * time.Hour
	discoverTimeout    = 10 * time.Second
	renewTimeout       = 30 * time.Second
	removeTimeout      = 5 * time.Second
)

// Gateway is the part of a NAT device the mapper drives.
type Gateway interface {
	Type() string
	GetExternalAddress() (net.IP, error)
	AddPortMapping(ctx context.Context, protocol string, internalPort int, description string, timeout time.Duration) (int, error)
	DeletePortMapping(ctx context.Context, protocol string, internalPort int) error
}

// DiscoverFunc finds a gateway on the local network.
type DiscoverFunc func(ctx context.Context) (Gateway, error)

// Discover tries UPnP then NAT-PMP.
func Discover(ctx context.Context) (Gateway, error) {
	return nat.DiscoverGateway(ctx)
}

type Config struct {
	Port        int
	Description string
	Lease       time.Duration
}

// Mapping is a live port forward, renewed at half its lease until Close.
type Mapping struct {
	gateway  Gateway
	port     int
	external int
	address  string
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Map discovers a gateway and forwards cfg.Port over TCP.
func Map(ctx context.Context, cfg Config, discover DiscoverFunc, logger *slog.Logger) (*Mapping, error) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, apperrors.Validationf("port %d out of range", cfg.Port)
	}
	if cfg.Description == "" {
		cfg.Description = defaultDescription
	}
	if cfg.Lease <= 0 {
		cfg.Lease = defaultLease
	}
	if discover == nil {
		discover = Discover
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "netmap")

	dctx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()

	gateway, err := discover(dctx)
	if err != nil {
		return nil, apperrors.WrapInternal("no NAT gateway found", err)
	}

	extIP, err := gateway.GetExternalAddress()
	if err != nil {
		return nil, apperrors.WrapInternal("get external address", err)
	}

	external, err := gateway.AddPortMapping(dctx, "tcp", cfg.Port, cfg.Description, cfg.Lease)
	if err != nil {
		return nil, apperrors.WrapInternal("add port mapping", err)
	}

	rctx, rcancel := context.WithCancel(context.Background())
	m := &Mapping{
		gateway:  gateway,
		port:     cfg.Port,
		external: external,
		address:  net.JoinHostPort(extIP.String(), fmt.Sprint(external)),
		logger:   logger,
		cancel:   rcancel,
		done:     make(chan struct{}),
	}
	logger.Info("Port mapped", "protocol", gateway.Type(), "internal", cfg.Port, "external", m.address)

	go m.renewLoop(rctx, cfg.Description, cfg.Lease)
	return m, nil
}

func (m *Mapping) renewLoop(ctx context.Context, description string, lease time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(lease / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(ctx, renewTimeout)
			_, err := m.gateway.AddPortMapping(rctx, "tcp", m.port, description, lease)
			cancel()
			if err != nil {
				m.logger.Warn("Failed to renew port mapping", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Address is the externally reachable host:port.
func (m *Mapping) Address() string {
	return m.address
}

// Protocol reports "UPnP (IGD1)", "NAT-PMP" and the like.
func (m *Mapping) Protocol() string {
	return m.gateway.Type()
}

// Close stops renewal and removes the mapping. Safe to call twice.
func (m *Mapping) Close() error {
	var err error
	m.once.Do(func() {
		m.cancel()
		<-m.done

		ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
		defer cancel()
		if derr := m.gateway.DeletePortMapping(ctx, "tcp", m.port); derr != nil {
			err = apperrors.WrapInternal("remove port mapping", derr)
		}
	})
	return err
}
