package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

func (s *Store) CreateFile(f File) error {
	tags, err := json.Marshal(f.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO files(id, name, type, size, url, uploaded_at, uploaded_by, uploaded_by_id, tags, folder_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Type, f.Size, f.URL, fmtTime(f.UploadedAt), f.UploadedBy, f.UploadedByID, string(tags), nullString(f.FolderID))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func scanFile(row interface{ Scan(...any) error }) (File, error) {
	var f File
	var uploadedAt, tags string
	var folder sql.NullString
	err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Size, &f.URL, &uploadedAt, &f.UploadedBy, &f.UploadedByID, &tags, &folder)
	if err != nil {
		return File{}, err
	}
	if f.UploadedAt, err = parseTime(uploadedAt); err != nil {
		return File{}, err
	}
	if err := json.Unmarshal([]byte(tags), &f.Tags); err != nil {
		return File{}, fmt.Errorf("decode tags: %w", err)
	}
	f.FolderID = fromNullString(folder)
	return f, nil
}

func (s *Store) GetFile(id string) (File, error) {
	return scanFile(s.db.QueryRow(`SELECT id, name, type, size, url, uploaded_at, uploaded_by, uploaded_by_id, tags, folder_id
		FROM files WHERE id = ?`, id))
}

func (s *Store) ListFiles() ([]File, error) {
	rows, err := s.db.Query(`SELECT id, name, type, size, url, uploaded_at, uploaded_by, uploaded_by_id, tags, folder_id
		FROM files ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	out := make([]File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) DeleteFile(id string) error {
	res, err := s.db.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
