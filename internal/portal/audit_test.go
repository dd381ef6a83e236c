package portal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/portal"
)

func TestAuditNewestFirst(t *testing.T) {
	p, _ := newTestPortal(t)

	p.Audit.Record(portal.ActionUpload, "u1", nil, "first")
	p.Audit.Record(portal.ActionDownload, "u1", nil, "second")
	target := "f9"
	p.Audit.Record(portal.ActionDelete, "u2", &target, "third")

	logs, err := p.Audit.Logs(0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "third", logs[0].Details)
	assert.Equal(t, "second", logs[1].Details)
	assert.Equal(t, "first", logs[2].Details)
	require.NotNil(t, logs[0].TargetID)
	assert.Equal(t, "f9", *logs[0].TargetID)

	limited, err := p.Audit.Logs(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "third", limited[0].Details)
}

func TestMutationsAreAudited(t *testing.T) {
	p, _ := newTestPortal(t)
	createAndLogin(t, p, "eva@example.com", "Eva", auth.RoleAdmin)

	fileID := addFile(t, p, "pic.png", "image/png")
	require.NoError(t, p.Files.Download(fileID))
	require.NoError(t, p.Files.Remove(fileID))

	logs, err := p.Audit.Logs(3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, portal.ActionDelete, logs[0].Action)
	assert.Equal(t, portal.ActionDownload, logs[1].Action)
	assert.Equal(t, portal.ActionUpload, logs[2].Action)
}
