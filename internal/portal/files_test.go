package portal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/portal"
	"github.com/ravinder2932/Media-Management/internal/util"
)

func addFile(t *testing.T, p *portal.Portal, name, mime string) string {
	t.Helper()
	id, err := p.Files.Add(portal.FileMeta{Name: name, MIME: mime, Size: 1024, URL: "mem://" + name})
	require.NoError(t, err)
	return id
}

func TestAddFileRequiresLoginAndCounts(t *testing.T) {
	p, _ := newTestPortal(t)

	_, err := p.Files.Add(portal.FileMeta{Name: "x.png", MIME: "image/png"})
	assert.ErrorIs(t, err, portal.ErrNotAuthenticated)

	u := createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	id := addFile(t, p, "x.png", "image/png")

	f, err := p.Files.Get(id)
	require.NoError(t, err)
	assert.Equal(t, util.TypeImage, f.Type)
	assert.Equal(t, u.ID, f.UploadedByID)
	assert.Equal(t, u.Name, f.UploadedBy)
	assert.Equal(t, []string{}, f.Tags)

	st, err := p.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalFiles)
	assert.EqualValues(t, 1, st.Uploads)
}

func TestRemoveFileAuthorization(t *testing.T) {
	p, _ := newTestPortal(t)

	createAndLogin(t, p, "owner@example.com", "Owner", auth.RoleEditor)
	fileID := addFile(t, p, "owned.pdf", "application/pdf")

	// another editor without delete permission, not the uploader
	createAndLogin(t, p, "other@example.com", "Other", auth.RoleEditor)
	assert.ErrorIs(t, p.Files.Remove(fileID), portal.ErrPermissionDenied)

	files, err := p.Files.List()
	require.NoError(t, err)
	assert.Len(t, files, 1, "denied delete must not mutate the registry")

	// even with the delete permission, a non-uploader is denied
	other := p.Identity.CurrentUser()
	on := true
	loginSuper(t, p)
	require.NoError(t, p.Identity.UpdatePermissions(other.ID, auth.PermissionPatch{Delete: &on}))
	_, err = p.Identity.Login("other@example.com", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Files.Remove(fileID), portal.ErrPermissionDenied)

	// admins may delete anything
	createAndLogin(t, p, "boss@example.com", "Boss", auth.RoleAdmin)
	require.NoError(t, p.Files.Remove(fileID))
	_, err = p.Files.Get(fileID)
	assert.ErrorIs(t, err, portal.ErrNotFound)
}

func TestRemoveFileKeepsLifetimeUploadCounter(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleAdmin)

	a := addFile(t, p, "a.png", "image/png")
	addFile(t, p, "b.png", "image/png")

	require.NoError(t, p.Files.Remove(a))

	st, err := p.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalFiles)
	assert.EqualValues(t, 2, st.Uploads, "uploads is a lifetime total")
}

func TestDownloadPermissionAndCounter(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	id := addFile(t, p, "song.mp3", "audio/mpeg")

	// viewers have no download permission
	createAndLogin(t, p, "viewer@example.com", "Viewer", auth.RoleViewer)
	assert.ErrorIs(t, p.Files.Download(id), portal.ErrPermissionDenied)

	_, err := p.Identity.Login("eva@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, p.Files.Download(id))

	// the gate does not verify existence
	require.NoError(t, p.Files.Download("gone"))

	st, err := p.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Downloads)
}

func TestFileFilters(t *testing.T) {
	p, clk := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)

	addFile(t, p, "holiday.png", "image/png")
	clk.Advance(48 * time.Hour)
	video := addFile(t, p, "Holiday-clip.mp4", "video/mp4")
	addFile(t, p, "notes.txt", "text/plain")

	byType, err := p.Files.ByType(util.TypeVideo)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, video, byType[0].ID)

	found, err := p.Files.Search("holiday")
	require.NoError(t, err)
	assert.Len(t, found, 2, "search is a case-insensitive substring match")

	start, end := portal.RangeForPreset(portal.RangeToday, clk.Now())
	recent, err := p.Files.ByDateRange(start, end)
	require.NoError(t, err)
	assert.Len(t, recent, 2, "only files uploaded after the 48h jump")
}

func TestFilesInFolder(t *testing.T) {
	p, _ := newTestPortal(t)
	u := createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)

	folderID, err := p.Folders.Create("clips", nil, u.ID)
	require.NoError(t, err)

	inFolder, err := p.Files.Add(portal.FileMeta{Name: "a.mp4", MIME: "video/mp4", URL: "mem://a", FolderID: &folderID})
	require.NoError(t, err)
	atRoot := addFile(t, p, "b.mp4", "video/mp4")

	files, err := p.Files.InFolder(&folderID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, inFolder, files[0].ID)

	files, err = p.Files.InFolder(nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, atRoot, files[0].ID)
}

func TestSimulateUploadReportsProgress(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)

	var updates []int64
	id, err := p.Files.SimulateUpload(context.Background(),
		portal.FileMeta{Name: "big.bin", Size: 600 * 1024, URL: "mem://big.bin"},
		func(done, total int64) {
			updates = append(updates, done)
			assert.EqualValues(t, 600*1024, total)
		})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// default 256 KiB chunks: 256, 512, 600
	require.Len(t, updates, 3)
	assert.EqualValues(t, 600*1024, updates[len(updates)-1])

	_, err = p.Files.Get(id)
	assert.NoError(t, err)
}
