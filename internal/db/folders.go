package db

import (
	"database/sql"
	"fmt"
)

func (s *Store) CreateFolder(f Folder) error {
	_, err := s.db.Exec(`INSERT INTO folders(id, name, parent_id, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.Name, nullString(f.ParentID), f.CreatedBy, fmtTime(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

func scanFolder(row interface{ Scan(...any) error }) (Folder, error) {
	var f Folder
	var parent sql.NullString
	var createdAt string
	if err := row.Scan(&f.ID, &f.Name, &parent, &f.CreatedBy, &createdAt); err != nil {
		return Folder{}, err
	}
	f.ParentID = fromNullString(parent)
	var err error
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return Folder{}, err
	}
	return f, nil
}

func (s *Store) GetFolder(id string) (Folder, error) {
	return scanFolder(s.db.QueryRow(`SELECT id, name, parent_id, created_by, created_at FROM folders WHERE id = ?`, id))
}

func (s *Store) listFolders(query string, args ...any) ([]Folder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	out := make([]Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) ListFolders() ([]Folder, error) {
	return s.listFolders(`SELECT id, name, parent_id, created_by, created_at FROM folders ORDER BY rowid ASC`)
}

// ChildFolders returns direct children; parentID nil means the root level.
func (s *Store) ChildFolders(parentID *string) ([]Folder, error) {
	return s.listFolders(`SELECT id, name, parent_id, created_by, created_at FROM folders
		WHERE parent_id IS ? ORDER BY rowid ASC`, nullString(parentID))
}

// SiblingNameExists reports whether a folder with the same name, compared
// case-insensitively, already exists under the same parent.
func (s *Store) SiblingNameExists(parentID *string, name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM folders WHERE parent_id IS ? AND lower(name) = lower(?)`,
		nullString(parentID), name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sibling lookup: %w", err)
	}
	return n > 0, nil
}

// DeleteFolder removes only the folder row itself. Children keep their
// parent_id and become orphans; the folder's files are untouched.
func (s *Store) DeleteFolder(id string) error {
	res, err := s.db.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM folder_files WHERE folder_id = ?`, id); err != nil {
		return fmt.Errorf("delete folder membership: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) AddFolderFile(folderID, fileID string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO folder_files(folder_id, file_id) VALUES (?, ?)`, folderID, fileID)
	if err != nil {
		return fmt.Errorf("add folder file: %w", err)
	}
	return nil
}

func (s *Store) RemoveFolderFile(folderID, fileID string) error {
	_, err := s.db.Exec(`DELETE FROM folder_files WHERE folder_id = ? AND file_id = ?`, folderID, fileID)
	if err != nil {
		return fmt.Errorf("remove folder file: %w", err)
	}
	return nil
}

func (s *Store) FolderFileIDs(folderID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT file_id FROM folder_files WHERE folder_id = ? ORDER BY rowid ASC`, folderID)
	if err != nil {
		return nil, fmt.Errorf("folder files: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
