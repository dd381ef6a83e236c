package portal

import (
	"context"
	"sync"
	"time"
)

// SessionService tracks last user activity and expires the login after a
// fixed idle window. Expiry is detected by polling, so the logout can lag
// the deadline by up to one poll interval.
type SessionService struct {
	portal  *Portal
	timeout time.Duration
	poll    time.Duration

	mu           sync.Mutex
	lastActivity time.Time
}

// UpdateActivity stamps the current time. The presentation layer calls this
// on every user interaction.
func (s *SessionService) UpdateActivity() {
	s.mu.Lock()
	s.lastActivity = s.portal.now()
	s.mu.Unlock()
}

// LastActivity returns the most recent activity stamp.
func (s *SessionService) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Check reports whether the session is still live. An expired session logs
// the current user out as a side effect and returns false.
func (s *SessionService) Check() bool {
	s.mu.Lock()
	idle := s.portal.now().Sub(s.lastActivity)
	s.mu.Unlock()

	if idle < s.timeout {
		return true
	}
	if s.portal.Identity.CurrentUser() != nil {
		s.portal.log.Warn("session expired after inactivity", "idle", idle)
		s.portal.Identity.Logout()
	}
	return false
}

// Watch polls Check on the configured interval until the context ends. It
// runs independently of user actions, so a logout can land mid-interaction;
// the only effect is the current-user reference being cleared.
func (s *SessionService) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check()
		}
	}
}
