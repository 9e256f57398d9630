package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME and the working directory at temp dirs so
// no real config is picked up.
func isolate(t *testing.T) (globalDir, projectDir string) {
	t.Helper()
	globalDir = t.TempDir()
	projectDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", globalDir)
	for _, env := range envKeys {
		t.Setenv(env, "")
		_ = os.Unsetenv(env)
	}

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(projectDir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return globalDir, projectDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/archintake/archintake.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %s", got)
	assert.Equal(t, "archintake.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "archintake.yml", ProjectPath())
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.EndpointURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Trace)
	assert.False(t, Exists())
}

func TestLoad_Precedence(t *testing.T) {
	globalDir, _ := isolate(t)

	globalPath := filepath.Join(globalDir, "archintake", "archintake.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(globalPath), 0755))
	require.NoError(t, os.WriteFile(globalPath, []byte("endpoint_url: https://global.test/hook\ntimeout: 10s\nlog_level: warn\n"), 0644))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("endpoint_url: https://project.test/hook\n"), 0644))
	t.Setenv("ARCHINTAKE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, Exists())
	assert.Equal(t, "https://project.test/hook", cfg.EndpointURL, "project config overrides global")
	assert.Equal(t, 10*time.Second, cfg.Timeout, "global value survives the merge")
	assert.Equal(t, "debug", cfg.LogLevel, "env overrides files")
}

func TestLoadWith_FlagOverride(t *testing.T) {
	isolate(t)
	t.Setenv("ARCHINTAKE_ENDPOINT_URL", "https://env.test/hook")

	v := viper.New()
	v.Set("endpoint_url", "https://flag.test/hook")

	cfg, err := LoadWith(v)
	require.NoError(t, err)
	assert.Equal(t, "https://flag.test/hook", cfg.EndpointURL)
}

func TestWriteGlobal_RoundTrip(t *testing.T) {
	isolate(t)

	in := &Config{
		EndpointURL: "https://example.test/webhook",
		ProjectURL:  "https://example.test/projects",
		Timeout:     90 * time.Second,
		LogLevel:    "info",
	}
	require.NoError(t, WriteGlobal(in))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 1m30s")

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in.EndpointURL, out.EndpointURL)
	assert.Equal(t, in.ProjectURL, out.ProjectURL)
	assert.Equal(t, in.Timeout, out.Timeout)
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(&Config{EndpointURL: "http://localhost:3333/agents/process", Timeout: time.Minute, LogLevel: "info"}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333/agents/process", cfg.EndpointURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{EndpointURL: "https://x.test", Timeout: time.Second}, ""},
		{"missing endpoint", Config{Timeout: time.Second}, "endpoint_url not configured"},
		{"negative timeout", Config{EndpointURL: "https://x.test", Timeout: -time.Second}, "timeout must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
