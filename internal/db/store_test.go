package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravinder2932/Media-Management/internal/auth"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	u := User{
		ID:           "u1",
		Email:        "eva@example.com",
		Name:         "Eva",
		Role:         auth.RoleEditor,
		PasswordHash: "$argon2id$...",
		Permissions:  auth.DefaultPermissions(auth.RoleEditor),
		CreatedAt:    created,
	}
	require.NoError(t, s.CreateUser(u))

	got, err := s.GetUser("u1")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	// email lookup is case-sensitive
	_, err = s.GetUserByEmail("EVA@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	got, err = s.GetUserByEmail("eva@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	login := created.Add(time.Hour)
	require.NoError(t, s.SetUserLastLogin("u1", login))
	got, err = s.GetUser("u1")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(login))

	n, err := s.CountUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.DeleteUser("u1"))
	assert.ErrorIs(t, s.DeleteUser("u1"), sql.ErrNoRows)
}

func TestFolderSiblingLookupIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	root := Folder{ID: "f1", Name: "Photos", CreatedBy: "u1", CreatedAt: time.Now()}
	require.NoError(t, s.CreateFolder(root))

	exists, err := s.SiblingNameExists(nil, "photos")
	require.NoError(t, err)
	assert.True(t, exists)

	parent := "f1"
	exists, err = s.SiblingNameExists(&parent, "photos")
	require.NoError(t, err)
	assert.False(t, exists, "same name under a different parent is free")
}

func TestFolderMembershipIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateFolder(Folder{ID: "f1", Name: "Docs", CreatedBy: "u1", CreatedAt: time.Now()}))

	require.NoError(t, s.AddFolderFile("f1", "file-a"))
	require.NoError(t, s.AddFolderFile("f1", "file-a"))
	ids, err := s.FolderFileIDs("f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"file-a"}, ids)

	require.NoError(t, s.RemoveFolderFile("f1", "file-a"))
	require.NoError(t, s.RemoveFolderFile("f1", "file-a"))
	ids, err = s.FolderFileIDs("f1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileTagsSurviveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	folder := "f1"
	f := File{
		ID:           "file-a",
		Name:         "talk.mp4",
		Type:         "video",
		Size:         1 << 20,
		URL:          "mem://talk.mp4",
		UploadedAt:   time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		UploadedBy:   "Eva",
		UploadedByID: "u1",
		Tags:         []string{"conference", "2025"},
		FolderID:     &folder,
	}
	require.NoError(t, s.CreateFile(f))

	got, err := s.GetFile("file-a")
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestCountersAndStats(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.IncrementCounter(CounterUploads, 1))
	require.NoError(t, s.IncrementCounter(CounterUploads, 1))
	require.NoError(t, s.IncrementCounter(CounterTotalFiles, 1))

	st, err := s.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Uploads)
	assert.EqualValues(t, 1, st.TotalFiles)
	assert.EqualValues(t, 0, st.Downloads)
}

func TestAuditOrderingNewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, action := range []string{"upload", "download", "delete"} {
		_, err := s.InsertAudit(action, "u1", nil, "entry", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	logs, err := s.ListAudit(0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "delete", logs[0].Action)
	assert.Equal(t, "upload", logs[2].Action)

	logs, err = s.ListAudit(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "delete", logs[0].Action)
}
