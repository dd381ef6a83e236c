package db

import (
	"time"

	"github.com/ravinder2932/Media-Management/internal/auth"
)

type User struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	PasswordHash string           `json:"-"`
	Permissions  auth.Permissions `json:"permissions"`
	CreatedAt    time.Time        `json:"created_at"`
	LastLogin    *time.Time       `json:"last_login,omitempty"`
}

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"` // nil = root
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"` // image, video, audio, document
	Size         int64     `json:"size"`
	URL          string    `json:"url"` // opaque content reference
	UploadedAt   time.Time `json:"uploaded_at"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedByID string    `json:"uploaded_by_id"`
	Tags         []string  `json:"tags"`
	FolderID     *string   `json:"folder_id"`
}

type ShareLink struct {
	ID            string    `json:"id"`
	FileID        string    `json:"file_id"`
	PasswordHash  string    `json:"-"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	DownloadCount int       `json:"download_count"`
	MaxDownloads  *int      `json:"max_downloads,omitempty"`
}

type AuditLog struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	TargetID  *string   `json:"target_id,omitempty"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats are lifetime counters: uploads and downloads only ever grow, while
// total files tracks the live count.
type Stats struct {
	TotalFiles int64 `json:"total_files"`
	Uploads    int64 `json:"uploads"`
	Downloads  int64 `json:"downloads"`
	Users      int64 `json:"users"`
}
