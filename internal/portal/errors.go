package portal

import "errors"

// Domain failures are sentinel errors so callers can branch on the cause
// instead of matching message text.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password too short")
	ErrProtectedAccount   = errors.New("account is protected")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidRole        = errors.New("unknown role")
	ErrNotFound           = errors.New("not found")

	ErrEmptyName        = errors.New("folder name must not be empty")
	ErrDuplicateSibling = errors.New("folder name already used under this parent")
)

// Share-link validation failures. The presentation layer may collapse all
// of these into a single "invalid link" notice; keeping them distinct lets
// logs and tests tell them apart.
var (
	ErrLinkNotFound  = errors.New("share link not found")
	ErrLinkExpired   = errors.New("share link has expired")
	ErrLinkPassword  = errors.New("invalid share password")
	ErrLinkExhausted = errors.New("maximum downloads reached")
)
