package portal_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ravinder2932/Media-Management/internal/config"
	"github.com/ravinder2932/Media-Management/internal/db"
	"github.com/ravinder2932/Media-Management/internal/portal"
)

// fakeClock lets tests advance logical time past share expiries and the
// session idle window.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestPortal(t *testing.T) (*portal.Portal, *fakeClock) {
	t.Helper()
	store, err := db.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clk := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	cfg := config.Default()
	cfg.UploadChunkDelayMS = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p, err := portal.New(store, cfg, logger, portal.WithClock(clk.Now))
	require.NoError(t, err)
	return p, clk
}

// loginSuper authenticates as the seeded super admin.
func loginSuper(t *testing.T, p *portal.Portal) db.User {
	t.Helper()
	cfg := config.Default()
	u, err := p.Identity.Login(cfg.SuperAdminEmail, cfg.SuperAdminPassword)
	require.NoError(t, err)
	return u
}

// createAndLogin registers a fresh user and switches the session to it.
func createAndLogin(t *testing.T, p *portal.Portal, email, name, role string) db.User {
	t.Helper()
	loginSuper(t, p)
	_, err := p.Identity.CreateUser(email, "secret123", name, role)
	require.NoError(t, err)
	u, err := p.Identity.Login(email, "secret123")
	require.NoError(t, err)
	return u
}
