package netmap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stellar-forge/internal/shared/errors"
)

type fakeGateway struct {
	mu      sync.Mutex
	adds    int
	deletes int
	addErr  error
}

func (f *fakeGateway) Type() string { return "fake" }

func (f *fakeGateway) GetExternalAddress() (net.IP, error) {
	return net.ParseIP("203.0.113.7"), nil
}

func (f *fakeGateway) AddPortMapping(ctx context.Context, protocol string, port int, desc string, lease time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds++
	if f.addErr != nil {
		return 0, f.addErr
	}
	return port + 1, nil
}

func (f *fakeGateway) DeletePortMapping(ctx context.Context, protocol string, port int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func (f *fakeGateway) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adds, f.deletes
}

func using(g Gateway) DiscoverFunc {
	return func(context.Context) (Gateway, error) { return g, nil }
}

var quiet = slog.New(slog.DiscardHandler)

func TestMap_AddsAndRemoves(t *testing.T) {
	gw := &fakeGateway{}
	m, err := Map(context.Background(), Config{Port: 8080}, using(gw), quiet)
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.7:8081", m.Address())
	assert.Equal(t, "fake", m.Protocol())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	adds, deletes := gw.counts()
	assert.Equal(t, 1, adds)
	assert.Equal(t, 1, deletes)
}

func TestMap_Renews(t *testing.T) {
	gw := &fakeGateway{}
	m, err := Map(context.Background(), Config{Port: 9000, Lease: 20 * time.Millisecond}, using(gw), quiet)
	require.NoError(t, err)
	defer m.Close()

	assert.Eventually(t, func() bool {
		adds, _ := gw.counts()
		return adds >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMap_Errors(t *testing.T) {
	_, err := Map(context.Background(), Config{Port: 0}, using(&fakeGateway{}), quiet)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	_, err = Map(context.Background(), Config{Port: 70000}, using(&fakeGateway{}), quiet)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))

	noGateway := func(context.Context) (Gateway, error) { return nil, errors.New("no devices") }
	_, err = Map(context.Background(), Config{Port: 8080}, noGateway, quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no NAT gateway found")

	_, err = Map(context.Background(), Config{Port: 8080}, using(&fakeGateway{addErr: errors.New("refused")}), quiet)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetType(err))
}
