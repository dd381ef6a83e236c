package db

import (
	"database/sql"
	"fmt"
)

func (s *Store) CreateShareLink(link ShareLink) error {
	var max any
	if link.MaxDownloads != nil {
		max = *link.MaxDownloads
	}
	_, err := s.db.Exec(`INSERT INTO share_links(id, file_id, password_hash, created_by, created_at, expires_at, download_count, max_downloads)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		link.ID, link.FileID, link.PasswordHash, link.CreatedBy,
		fmtTime(link.CreatedAt), fmtTime(link.ExpiresAt), link.DownloadCount, max)
	if err != nil {
		return fmt.Errorf("create share link: %w", err)
	}
	return nil
}

func scanShareLink(row interface{ Scan(...any) error }) (ShareLink, error) {
	var l ShareLink
	var createdAt, expiresAt string
	var max sql.NullInt64
	err := row.Scan(&l.ID, &l.FileID, &l.PasswordHash, &l.CreatedBy, &createdAt, &expiresAt, &l.DownloadCount, &max)
	if err != nil {
		return ShareLink{}, err
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return ShareLink{}, err
	}
	if l.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return ShareLink{}, err
	}
	if max.Valid {
		v := int(max.Int64)
		l.MaxDownloads = &v
	}
	return l, nil
}

func (s *Store) GetShareLink(id string) (ShareLink, error) {
	return scanShareLink(s.db.QueryRow(`SELECT id, file_id, password_hash, created_by, created_at, expires_at, download_count, max_downloads
		FROM share_links WHERE id = ?`, id))
}

func (s *Store) ListShareLinks() ([]ShareLink, error) {
	rows, err := s.db.Query(`SELECT id, file_id, password_hash, created_by, created_at, expires_at, download_count, max_downloads
		FROM share_links ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	defer rows.Close()

	out := make([]ShareLink, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// IncrementShareDownloads bumps the per-link counter unconditionally; the
// caller is trusted to invoke it only after a successful download.
func (s *Store) IncrementShareDownloads(id string) error {
	_, err := s.db.Exec(`UPDATE share_links SET download_count = download_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment share downloads: %w", err)
	}
	return nil
}

func (s *Store) DeleteShareLink(id string) error {
	_, err := s.db.Exec(`DELETE FROM share_links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete share link: %w", err)
	}
	return nil
}
