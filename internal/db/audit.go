package db

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) InsertAudit(action, userID string, targetID *string, details string, createdAt time.Time) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO audit_logs(action, user_id, target_id, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		action, userID, nullString(targetID), details, fmtTime(createdAt))
	if err != nil {
		return 0, fmt.Errorf("insert audit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("audit id: %w", err)
	}
	return id, nil
}

// ListAudit returns entries newest first. Insertion ids order same-timestamp
// entries deterministically. limit <= 0 returns everything.
func (s *Store) ListAudit(limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT id, action, user_id, target_id, details, created_at
		FROM audit_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	logs := make([]AuditLog, 0)
	for rows.Next() {
		var l AuditLog
		var target sql.NullString
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Action, &l.UserID, &target, &l.Details, &createdAt); err != nil {
			return nil, err
		}
		l.TargetID = fromNullString(target)
		if l.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
