package portal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/portal"
)

func TestCreateShareLinkRequiresLogin(t *testing.T) {
	p, _ := newTestPortal(t)

	_, err := p.Shares.Create("some-file", "p", 1, nil)
	assert.ErrorIs(t, err, portal.ErrNotAuthenticated)
}

func TestShareLinkLifecycle(t *testing.T) {
	p, _ := newTestPortal(t)
	u := createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	id, err := p.Shares.Create(fileID, "p", 24, nil)
	require.NoError(t, err)

	link, err := p.Shares.Get(id)
	require.NoError(t, err)
	assert.Equal(t, fileID, link.FileID)
	assert.Equal(t, u.ID, link.CreatedBy)
	assert.Equal(t, 0, link.DownloadCount)
	assert.Nil(t, link.MaxDownloads)
	assert.True(t, link.ExpiresAt.Equal(link.CreatedAt.Add(24*time.Hour)))

	shared, err := p.Shares.Validate(id, "p")
	require.NoError(t, err)
	assert.Equal(t, "talk.mp4", shared.Name)
	assert.Equal(t, "mem://talk.mp4", shared.URL)

	require.NoError(t, p.Shares.Delete(id))
	_, err = p.Shares.Validate(id, "p")
	assert.ErrorIs(t, err, portal.ErrLinkNotFound)
}

func TestValidateShareLinkWrongPassword(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	id, err := p.Shares.Create(fileID, "correct", 1, nil)
	require.NoError(t, err)

	_, err = p.Shares.Validate(id, "wrong")
	assert.ErrorIs(t, err, portal.ErrLinkPassword)
}

func TestShareLinkDownloadCap(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	max := 1
	id, err := p.Shares.Create(fileID, "p", 1, &max)
	require.NoError(t, err)

	_, err = p.Shares.Validate(id, "p")
	require.NoError(t, err)

	require.NoError(t, p.Shares.IncrementDownloads(id))

	_, err = p.Shares.Validate(id, "p")
	assert.ErrorIs(t, err, portal.ErrLinkExhausted)
}

func TestShareLinkExpiry(t *testing.T) {
	p, clk := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	id, err := p.Shares.Create(fileID, "p", 1, nil)
	require.NoError(t, err)

	clk.Advance(61 * time.Minute)

	// expiry wins regardless of password correctness
	_, err = p.Shares.Validate(id, "p")
	assert.ErrorIs(t, err, portal.ErrLinkExpired)
	_, err = p.Shares.Validate(id, "wrong")
	assert.ErrorIs(t, err, portal.ErrLinkExpired)
}

func TestShareLinkDanglesAfterFileDelete(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleAdmin)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	id, err := p.Shares.Create(fileID, "p", 24, nil)
	require.NoError(t, err)

	// deleting the file does not cascade to the link
	require.NoError(t, p.Files.Remove(fileID))
	_, err = p.Shares.Get(id)
	require.NoError(t, err)

	// earlier checks still run in order; resolution fails last
	_, err = p.Shares.Validate(id, "wrong")
	assert.ErrorIs(t, err, portal.ErrLinkPassword)
	_, err = p.Shares.Validate(id, "p")
	assert.ErrorIs(t, err, portal.ErrNotFound)
}

func TestShareURLFormat(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleEditor)
	fileID := addFile(t, p, "talk.mp4", "video/mp4")

	id, err := p.Shares.Create(fileID, "p", 1, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:7630/share/"+id, p.Shares.URL(id))
}
