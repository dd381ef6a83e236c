package portal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/config"
	"github.com/ravinder2932/Media-Management/internal/db"
)

// Portal wires the domain services over a single in-memory store. It is
// constructed once at startup and handed to the presentation layer; tests
// build a fresh portal per case.
type Portal struct {
	Identity *IdentityService
	Folders  *FolderService
	Files    *FileService
	Shares   *ShareService
	Audit    *AuditService
	Session  *SessionService

	store *db.Store
	cfg   config.Config
	log   *slog.Logger
	now   func() time.Time
}

type Option func(*Portal)

// WithClock overrides the time source, used by tests to advance logical
// time past share expiries and session timeouts.
func WithClock(now func() time.Time) Option {
	return func(p *Portal) {
		p.now = now
	}
}

func New(store *db.Store, cfg config.Config, logger *slog.Logger, opts ...Option) (*Portal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Portal{
		store: store,
		cfg:   cfg,
		log:   logger,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.Audit = &AuditService{portal: p}
	p.Identity = &IdentityService{portal: p}
	p.Folders = &FolderService{portal: p}
	p.Files = &FileService{portal: p}
	p.Shares = &ShareService{portal: p}
	p.Session = &SessionService{
		portal:  p,
		timeout: time.Duration(cfg.SessionTimeoutMinutes) * time.Minute,
		poll:    time.Duration(cfg.SessionPollSeconds) * time.Second,
	}
	p.Session.lastActivity = p.now()

	if err := p.ensureSuperAdmin(); err != nil {
		return nil, err
	}
	return p, nil
}

// Stats snapshots the aggregate counters shown on the dashboard.
func (p *Portal) Stats() (db.Stats, error) {
	return p.store.GetStats()
}

// ensureSuperAdmin seeds the distinguished super admin account from config.
func (p *Portal) ensureSuperAdmin() error {
	if _, err := p.store.GetUser(auth.SuperAdminID); err == nil {
		return nil
	}
	hash, err := auth.HashPassword(p.cfg.SuperAdminPassword)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}
	u := db.User{
		ID:           auth.SuperAdminID,
		Email:        p.cfg.SuperAdminEmail,
		Name:         p.cfg.SuperAdminName,
		Role:         auth.RoleSuperAdmin,
		PasswordHash: hash,
		Permissions:  auth.DefaultPermissions(auth.RoleSuperAdmin),
		CreatedAt:    p.now(),
	}
	if err := p.store.CreateUser(u); err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}
	p.log.Info("seeded super admin account", "email", u.Email)
	return nil
}
