package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TODOIST_CLIENT_ID", "cid")
	t.Setenv("TODOIST_CLIENT_SECRET", "csecret")
	t.Setenv("TASKFENCE_SESSION_SECRET", "ssecret")
}

func TestLoad_DefaultsWithEnvCredentials(t *testing.T) {
	setCredentialEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "taskfence.db", cfg.DatabasePath)
	assert.Equal(t, "https://todoist.com/oauth/authorize", cfg.Todoist.AuthURL)
	assert.Equal(t, "cid", cfg.Todoist.ClientID)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	setCredentialEnv(t)
	t.Setenv("TASKFENCE_LISTEN_ADDR", "0.0.0.0:9000")

	path := filepath.Join(t.TempDir(), "taskfence.yaml")
	data := []byte("listen_addr: 127.0.0.1:7000\ndatabase_path: /var/lib/taskfence.db\ntodoist:\n  sync_url: http://example.test/sync\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// env wins over file, file wins over defaults
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, "/var/lib/taskfence.db", cfg.DatabasePath)
	assert.Equal(t, "http://example.test/sync", cfg.Todoist.SyncURL)
	assert.Equal(t, "https://beta.todoist.com/API/v8", cfg.Todoist.RestURL)
}

func TestLoad_MissingCredentialsRejected(t *testing.T) {
	t.Setenv("TODOIST_CLIENT_ID", "")
	t.Setenv("TODOIST_CLIENT_SECRET", "")
	t.Setenv("TASKFENCE_SESSION_SECRET", "ssecret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client credentials")
}

func TestLoad_MissingSessionSecretRejected(t *testing.T) {
	t.Setenv("TODOIST_CLIENT_ID", "cid")
	t.Setenv("TODOIST_CLIENT_SECRET", "csecret")
	t.Setenv("TASKFENCE_SESSION_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret")
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	setCredentialEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "taskfence.db", cfg.DatabasePath)
}
