package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires a newer Go release.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.Watch)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("port: 9001\nsession_secret: s3cr3t\nauth_user: admin\nauth_password: hunter2\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "admin", cfg.AuthUser)
	assert.True(t, cfg.AuthEnabled())
}

func TestLoadRejectsAuthWithoutSessionSecret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("auth_user: admin\nauth_password: hunter2\n"), 0o600))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_secret")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("port: 9001\n"), 0o600))

	t.Setenv("ROWBOAT_PORT", "9002")
	t.Setenv("ROWBOAT_SESSION_SECRET", "s3cr3t")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9002, cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.SessionSecret)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ROWBOAT_PORT", "9002")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	flags.String("env-file", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "9003"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 9003, cfg.Port)
}

func TestLoadDotenvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envPath, []byte("DB_1_TYPE=postgres\nDB_1_ID=from_dotenv\n"), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("env-file", "", "")
	require.NoError(t, flags.Parse([]string{"--env-file", envPath}))

	chdir(t, dir)
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_1_TYPE")
		_ = os.Unsetenv("DB_1_ID")
	})
	_, err := Load("", flags)
	require.NoError(t, err)

	descs := ParseDescriptors(os.LookupEnv)
	require.Len(t, descs, 1)
	assert.Equal(t, "from_dotenv", descs[0].ID)
}
