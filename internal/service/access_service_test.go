package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeAdminsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admins.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAccessService(t *testing.T) {
	path := writeAdminsFile(t, `{"admins": [1323961884, 42]}`)
	svc, err := NewAccessService(path)
	require.NoError(t, err)

	require.True(t, svc.IsAdmin(1323961884))
	require.True(t, svc.IsAdmin(42))
	require.False(t, svc.IsAdmin(7))
	require.Equal(t, int64(1323961884), svc.PrimaryAdmin())
}

func TestAccessServiceReload(t *testing.T) {
	path := writeAdminsFile(t, `{"admins": [1]}`)
	svc, err := NewAccessService(path)
	require.NoError(t, err)
	require.False(t, svc.IsAdmin(2))

	require.NoError(t, os.WriteFile(path, []byte(`{"admins": [2]}`), 0o644))
	// До явного Reload действует закэшированный список
	require.True(t, svc.IsAdmin(1))

	require.NoError(t, svc.Reload())
	require.True(t, svc.IsAdmin(2))
	require.False(t, svc.IsAdmin(1))
}

func TestAccessServiceBadFile(t *testing.T) {
	_, err := NewAccessService(filepath.Join(t.TempDir(), "нет_такого.json"))
	require.Error(t, err)

	path := writeAdminsFile(t, `не json`)
	_, err = NewAccessService(path)
	require.Error(t, err)
}

func TestAccessServiceEmptyList(t *testing.T) {
	path := writeAdminsFile(t, `{"admins": []}`)
	svc, err := NewAccessService(path)
	require.NoError(t, err)
	require.Equal(t, int64(0), svc.PrimaryAdmin())
	require.False(t, svc.IsAdmin(0))
}
