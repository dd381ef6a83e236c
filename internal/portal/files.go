package portal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/db"
	"github.com/ravinder2932/Media-Management/internal/util"
)

// FileService is the flat file registry. Records carry metadata only; the
// URL field is an opaque content reference, never dereferenced here.
type FileService struct {
	portal *Portal
}

// FileMeta describes an upload. Type is inferred from MIME, with document
// as the fallback.
type FileMeta struct {
	Name     string
	MIME     string
	Size     int64
	URL      string
	Tags     []string
	FolderID *string
}

// Add registers an uploaded file under the current user and bumps the
// total-files and lifetime upload counters.
func (s *FileService) Add(meta FileMeta) (string, error) {
	cur := s.portal.Identity.CurrentUser()
	if cur == nil {
		return "", ErrNotAuthenticated
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	f := db.File{
		ID:           uuid.NewString(),
		Name:         meta.Name,
		Type:         util.FileTypeFromMIME(meta.MIME),
		Size:         meta.Size,
		URL:          meta.URL,
		UploadedAt:   s.portal.now(),
		UploadedBy:   cur.Name,
		UploadedByID: cur.ID,
		Tags:         tags,
		FolderID:     meta.FolderID,
	}
	if err := s.portal.store.CreateFile(f); err != nil {
		return "", err
	}
	if err := s.portal.store.IncrementCounter(db.CounterTotalFiles, 1); err != nil {
		return "", err
	}
	if err := s.portal.store.IncrementCounter(db.CounterUploads, 1); err != nil {
		return "", err
	}
	s.portal.Audit.Record(ActionUpload, cur.ID, &f.ID, "uploaded "+f.Name)
	return f.ID, nil
}

// Remove deletes a file record. Admins and the super admin may delete
// anything; other users need the delete permission and must be the original
// uploader. A denied attempt leaves the registry untouched. Only the live
// total-files counter is decremented; uploads is a lifetime total.
func (s *FileService) Remove(id string) error {
	cur := s.portal.Identity.CurrentUser()
	if cur == nil {
		return ErrPermissionDenied
	}
	f, err := s.portal.store.GetFile(id)
	if err != nil {
		return ErrPermissionDenied
	}
	allowed := cur.Role == auth.RoleSuperAdmin || cur.Role == auth.RoleAdmin ||
		(cur.Permissions.Delete && f.UploadedByID == cur.ID)
	if !allowed {
		return ErrPermissionDenied
	}
	if err := s.portal.store.DeleteFile(id); err != nil {
		return err
	}
	if err := s.portal.store.IncrementCounter(db.CounterTotalFiles, -1); err != nil {
		return err
	}
	s.portal.Audit.Record(ActionDelete, cur.ID, &id, "deleted "+f.Name)
	return nil
}

// Download gates on the download permission and bumps the lifetime download
// counter. It does not verify that the file still exists.
func (s *FileService) Download(id string) error {
	cur := s.portal.Identity.CurrentUser()
	if cur == nil || !cur.Permissions.Download {
		return ErrPermissionDenied
	}
	if err := s.portal.store.IncrementCounter(db.CounterDownloads, 1); err != nil {
		return err
	}
	s.portal.Audit.Record(ActionDownload, cur.ID, &id, "downloaded file")
	return nil
}

func (s *FileService) Get(id string) (db.File, error) {
	f, err := s.portal.store.GetFile(id)
	if err != nil {
		return db.File{}, ErrNotFound
	}
	return f, nil
}

func (s *FileService) List() ([]db.File, error) {
	return s.portal.store.ListFiles()
}

// filter runs a linear scan over the full list. There is no indexing; the
// registry is sized for a single interactive session.
func (s *FileService) filter(keep func(db.File) bool) ([]db.File, error) {
	files, err := s.portal.store.ListFiles()
	if err != nil {
		return nil, err
	}
	out := make([]db.File, 0, len(files))
	for _, f := range files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Search matches the name substring case-insensitively.
func (s *FileService) Search(query string) ([]db.File, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(f db.File) bool {
		return q == "" || strings.Contains(strings.ToLower(f.Name), q)
	})
}

func (s *FileService) ByType(fileType string) ([]db.File, error) {
	return s.filter(func(f db.File) bool { return f.Type == fileType })
}

// InFolder lists files owned by a folder; nil means files at the root.
func (s *FileService) InFolder(folderID *string) ([]db.File, error) {
	return s.filter(func(f db.File) bool {
		if folderID == nil {
			return f.FolderID == nil
		}
		return f.FolderID != nil && *f.FolderID == *folderID
	})
}

func (s *FileService) ByDateRange(start, end time.Time) ([]db.File, error) {
	return s.filter(func(f db.File) bool {
		return !f.UploadedAt.Before(start) && !f.UploadedAt.After(end)
	})
}

// Date-range presets offered by the file list filter.
const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// RangeForPreset resolves a preset to absolute bounds relative to now.
func RangeForPreset(preset string, now time.Time) (time.Time, time.Time) {
	end := now
	switch preset {
	case RangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), end
	case RangeWeek:
		return now.AddDate(0, 0, -7), end
	case RangeMonth:
		return now.AddDate(0, -1, 0), end
	default:
		return time.Time{}, end
	}
}

// UploadProgress reports simulated transfer progress.
type UploadProgress func(transferred, total int64)

// SimulateUpload paces through the file size in fixed chunks with an
// artificial delay between progress updates, then registers the file. The
// delay is cosmetic; there is no failure path and no cancellation beyond
// the context.
func (s *FileService) SimulateUpload(ctx context.Context, meta FileMeta, progress UploadProgress) (string, error) {
	chunk := int64(s.portal.cfg.UploadChunkSizeKB) * 1024
	delay := time.Duration(s.portal.cfg.UploadChunkDelayMS) * time.Millisecond

	var done int64
	for done < meta.Size {
		done += chunk
		if done > meta.Size {
			done = meta.Size
		}
		if progress != nil {
			progress(done, meta.Size)
		}
		if done < meta.Size && delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	if meta.Size == 0 && progress != nil {
		progress(0, 0)
	}
	return s.Add(meta)
}
