package portal

import "github.com/ravinder2932/Media-Management/internal/db"

// Audit action kinds.
const (
	ActionUpload     = "upload"
	ActionDownload   = "download"
	ActionDelete     = "delete"
	ActionCreateUser = "create_user"
	ActionUpdateUser = "update_user"
	ActionDeleteUser = "delete_user"
)

// AuditService is an append-only action log. Entries are immutable and
// returned newest first.
type AuditService struct {
	portal *Portal
}

// Record appends an entry, assigning its id and timestamp. Audit failures
// are logged and swallowed so they never fail the action being recorded.
func (s *AuditService) Record(action, userID string, targetID *string, details string) {
	if _, err := s.portal.store.InsertAudit(action, userID, targetID, details, s.portal.now()); err != nil {
		s.portal.log.Warn("audit record failed", "action", action, "err", err)
	}
}

// Logs returns entries most-recent-first, truncated to limit when limit > 0.
func (s *AuditService) Logs(limit int) ([]db.AuditLog, error) {
	return s.portal.store.ListAudit(limit)
}
