package portal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/db"
)

// IdentityService owns the user set and the currently authenticated user.
// The current-user pointer is guarded because the session watcher can log
// the user out from its own goroutine.
type IdentityService struct {
	portal *Portal

	mu      sync.RWMutex
	current *db.User
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *IdentityService) CurrentUser() *db.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *IdentityService) setCurrent(u *db.User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
}

// actorID is recorded in audit entries; empty when nobody is logged in.
func (s *IdentityService) actorID() string {
	if u := s.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}

// Login authenticates by email and password. Email lookup is exact; the
// password is verified against the stored argon2id hash.
func (s *IdentityService) Login(email, password string) (db.User, error) {
	u, err := s.portal.store.GetUserByEmail(email)
	if err != nil {
		return db.User{}, ErrInvalidCredentials
	}
	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil || !ok {
		return db.User{}, ErrInvalidCredentials
	}

	now := s.portal.now()
	if err := s.portal.store.SetUserLastLogin(u.ID, now); err != nil {
		return db.User{}, err
	}
	u.LastLogin = &now
	s.setCurrent(&u)
	s.portal.Session.UpdateActivity()
	s.portal.log.Info("user logged in", "user", u.Email, "role", u.Role)
	return u, nil
}

func (s *IdentityService) Logout() {
	if u := s.CurrentUser(); u != nil {
		s.portal.log.Info("user logged out", "user", u.Email)
	}
	s.setCurrent(nil)
}

// CreateUser registers a new account with the default permission set for
// its role. The email duplicate check is case-sensitive.
func (s *IdentityService) CreateUser(email, password, name, role string) (db.User, error) {
	if !auth.ValidRole(role) {
		return db.User{}, ErrInvalidRole
	}
	if _, err := s.portal.store.GetUserByEmail(email); err == nil {
		return db.User{}, ErrDuplicateEmail
	}
	if len(password) < s.portal.cfg.MinPasswordLength {
		return db.User{}, ErrWeakPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return db.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := db.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hash,
		Permissions:  auth.DefaultPermissions(role),
		CreatedAt:    s.portal.now(),
	}
	if err := s.portal.store.CreateUser(u); err != nil {
		return db.User{}, err
	}
	s.portal.Audit.Record(ActionCreateUser, s.actorID(), &u.ID, fmt.Sprintf("created user %s (%s)", u.Email, u.Role))
	return u, nil
}

// DeleteUser removes an account. The super admin and the acting user's own
// account are protected.
func (s *IdentityService) DeleteUser(id string) error {
	if id == auth.SuperAdminID {
		return ErrProtectedAccount
	}
	if cur := s.CurrentUser(); cur != nil && cur.ID == id {
		return ErrProtectedAccount
	}
	if err := s.portal.store.DeleteUser(id); err != nil {
		return ErrNotFound
	}
	s.portal.Audit.Record(ActionDeleteUser, s.actorID(), &id, "deleted user")
	return nil
}

// UpdateRole changes a user's role and resets their permissions to that
// role's defaults, discarding any prior overrides.
func (s *IdentityService) UpdateRole(id, role string) error {
	if id == auth.SuperAdminID {
		return ErrProtectedAccount
	}
	if !auth.ValidRole(role) {
		return ErrInvalidRole
	}
	if err := s.portal.store.SetUserRole(id, role, auth.DefaultPermissions(role)); err != nil {
		return ErrNotFound
	}
	s.portal.Audit.Record(ActionUpdateUser, s.actorID(), &id, fmt.Sprintf("role changed to %s", role))
	return nil
}

// UpdatePermissions merges a partial override into the user's current set.
func (s *IdentityService) UpdatePermissions(id string, patch auth.PermissionPatch) error {
	if id == auth.SuperAdminID {
		return ErrProtectedAccount
	}
	u, err := s.portal.store.GetUser(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.portal.store.SetUserPermissions(id, patch.Apply(u.Permissions)); err != nil {
		return ErrNotFound
	}
	s.portal.Audit.Record(ActionUpdateUser, s.actorID(), &id, "permissions updated")
	return nil
}

// UpdatePassword sets a new password for the target account. Only the
// account owner or the super admin may change a password, and nobody but
// the super admin may change the super admin's.
func (s *IdentityService) UpdatePassword(id, newPassword string, actor db.User) error {
	if len(newPassword) < s.portal.cfg.MinPasswordLength {
		return ErrWeakPassword
	}
	if id != actor.ID && actor.Role != auth.RoleSuperAdmin {
		return ErrPermissionDenied
	}
	if id == auth.SuperAdminID && actor.ID != auth.SuperAdminID {
		return ErrPermissionDenied
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.portal.store.SetUserPassword(id, hash); err != nil {
		return ErrNotFound
	}
	s.portal.Audit.Record(ActionUpdateUser, actor.ID, &id, "password changed")
	return nil
}

func (s *IdentityService) User(id string) (db.User, error) {
	u, err := s.portal.store.GetUser(id)
	if err != nil {
		return db.User{}, ErrNotFound
	}
	return u, nil
}

func (s *IdentityService) Users() ([]db.User, error) {
	return s.portal.store.ListUsers()
}
