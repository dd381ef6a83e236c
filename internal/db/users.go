package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ravinder2932/Media-Management/internal/auth"
)

const userColumns = `id, email, password_hash, name, role,
	perm_view, perm_upload, perm_download, perm_delete, perm_manage_users,
	created_at, last_login`

func (s *Store) CreateUser(u User) error {
	_, err := s.db.Exec(`INSERT INTO users(id, email, password_hash, name, role,
		perm_view, perm_upload, perm_download, perm_delete, perm_manage_users, created_at, last_login)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role,
		boolToInt(u.Permissions.View), boolToInt(u.Permissions.Upload), boolToInt(u.Permissions.Download),
		boolToInt(u.Permissions.Delete), boolToInt(u.Permissions.ManageUsers),
		fmtTime(u.CreatedAt), fmtNullTime(u.LastLogin))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var view, upload, download, del, manage int
	var createdAt string
	var lastLogin sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&view, &upload, &download, &del, &manage, &createdAt, &lastLogin)
	if err != nil {
		return User{}, err
	}
	u.Permissions = auth.Permissions{
		View:        view == 1,
		Upload:      upload == 1,
		Download:    download == 1,
		Delete:      del == 1,
		ManageUsers: manage == 1,
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return User{}, err
	}
	if u.LastLogin, err = parseNullTime(lastLogin); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(id string) (User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByEmail matches the email exactly; lookup is case-sensitive.
func (s *Store) GetUserByEmail(email string) (User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (s *Store) ListUsers() ([]User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) DeleteUser(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) SetUserRole(id, role string, perms auth.Permissions) error {
	res, err := s.db.Exec(`UPDATE users SET role = ?,
		perm_view = ?, perm_upload = ?, perm_download = ?, perm_delete = ?, perm_manage_users = ?
		WHERE id = ?`,
		role, boolToInt(perms.View), boolToInt(perms.Upload), boolToInt(perms.Download),
		boolToInt(perms.Delete), boolToInt(perms.ManageUsers), id)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) SetUserPermissions(id string, perms auth.Permissions) error {
	res, err := s.db.Exec(`UPDATE users SET
		perm_view = ?, perm_upload = ?, perm_download = ?, perm_delete = ?, perm_manage_users = ?
		WHERE id = ?`,
		boolToInt(perms.View), boolToInt(perms.Upload), boolToInt(perms.Download),
		boolToInt(perms.Delete), boolToInt(perms.ManageUsers), id)
	if err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) SetUserPassword(id, passwordHash string) error {
	res, err := s.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) SetUserLastLogin(id string, t time.Time) error {
	_, err := s.db.Exec(`UPDATE users SET last_login = ? WHERE id = ?`, fmtTime(t), id)
	if err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}

func (s *Store) CountUsers() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
