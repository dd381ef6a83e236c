package portal

import (
	"fmt"
	"time"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/db"
	"github.com/ravinder2932/Media-Management/internal/util"
)

// ShareService maps link identifiers to password-protected, time-limited
// download grants for single files. Links reference files by id only;
// deleting a file leaves its links dangling and they fail at resolution.
type ShareService struct {
	portal *Portal
}

// SharedFile is the view of a file exposed through a validated link.
type SharedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// Create mints a share link for a file. The caller supplies the password
// (typically from util.GeneratePassword) and is responsible for keeping
// expiryHours and maxDownloads within the configured bounds; the registry
// does not enforce them. maxDownloads nil means unlimited.
func (s *ShareService) Create(fileID, password string, expiryHours int, maxDownloads *int) (string, error) {
	cur := s.portal.Identity.CurrentUser()
	if cur == nil {
		return "", ErrNotAuthenticated
	}
	id, err := util.RandomToken(9)
	if err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash share password: %w", err)
	}

	now := s.portal.now()
	link := db.ShareLink{
		ID:           id,
		FileID:       fileID,
		PasswordHash: hash,
		CreatedBy:    cur.ID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Duration(expiryHours) * time.Hour),
		MaxDownloads: maxDownloads,
	}
	if err := s.portal.store.CreateShareLink(link); err != nil {
		return "", err
	}
	s.portal.log.Info("share link created", "link", id, "file", fileID, "expires", link.ExpiresAt)
	return id, nil
}

// Validate checks a link in fixed order: existence, expiry, password,
// download cap, and only then whether the target file still exists. Any
// failure is a typed error; the presentation layer may collapse them all
// into one user-facing notice.
func (s *ShareService) Validate(id, password string) (SharedFile, error) {
	link, err := s.portal.store.GetShareLink(id)
	if err != nil {
		return SharedFile{}, ErrLinkNotFound
	}
	if s.portal.now().After(link.ExpiresAt) {
		return SharedFile{}, ErrLinkExpired
	}
	ok, err := auth.VerifyPassword(link.PasswordHash, password)
	if err != nil || !ok {
		return SharedFile{}, ErrLinkPassword
	}
	if link.MaxDownloads != nil && link.DownloadCount >= *link.MaxDownloads {
		return SharedFile{}, ErrLinkExhausted
	}

	f, err := s.portal.store.GetFile(link.FileID)
	if err != nil {
		return SharedFile{}, ErrNotFound
	}
	return SharedFile{ID: f.ID, Name: f.Name, Type: f.Type, Size: f.Size, URL: f.URL}, nil
}

// IncrementDownloads bumps the per-link counter. The registry does not
// check that a successful Validate preceded the call; that trust sits with
// the caller.
func (s *ShareService) IncrementDownloads(id string) error {
	return s.portal.store.IncrementShareDownloads(id)
}

func (s *ShareService) Delete(id string) error {
	return s.portal.store.DeleteShareLink(id)
}

func (s *ShareService) Get(id string) (db.ShareLink, error) {
	link, err := s.portal.store.GetShareLink(id)
	if err != nil {
		return db.ShareLink{}, ErrLinkNotFound
	}
	return link, nil
}

func (s *ShareService) List() ([]db.ShareLink, error) {
	return s.portal.store.ListShareLinks()
}

// URL renders the public form of a link: <origin>/share/<linkId>.
func (s *ShareService) URL(id string) string {
	return util.ShareURL(s.portal.cfg.Origin, id)
}
