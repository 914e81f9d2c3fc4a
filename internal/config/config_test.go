package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir and working directory at empty temp dirs
// and clears the TADA_* environment.
func isolate(t *testing.T) (userDir, workDir string) {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, k := range []string{"TADA_USER", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FORMAT", "TADA_LOG_FILE", "TADA_NO_COLOR"} {
		t.Setenv(k, "")
	}
	workDir = t.TempDir()
	t.Chdir(workDir)
	userDir = filepath.Join(xdg, "tada")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	return userDir, workDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserName, cfg.UserName)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Empty(t, cfg.Source)
}

func TestLoadPrecedence(t *testing.T) {
	userDir, workDir := isolate(t)
	writeFile(t, filepath.Join(userDir, FileName), `
user_name = "Ada"
theme = "neon"
log_level = "debug"
`)
	writeFile(t, filepath.Join(workDir, FileName), `
theme = "mono"
`)

	t.Run("project file overrides user file", func(t *testing.T) {
		cfg, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, "Ada", cfg.UserName)
		assert.Equal(t, "mono", cfg.Theme)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, FileName, cfg.Source)
	})

	t.Run("env overrides files", func(t *testing.T) {
		t.Setenv("TADA_USER", "Grace")
		t.Setenv("TADA_NO_COLOR", "true")
		cfg, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, "Grace", cfg.UserName)
		assert.True(t, cfg.NoColor)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("TADA_USER", "Grace")
		fs := flag.NewFlagSet("tada", flag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"-user", "Linus", "-theme", "classic"}))

		cfg, err := Load(fs)
		require.NoError(t, err)
		assert.Equal(t, "Linus", cfg.UserName)
		assert.Equal(t, "classic", cfg.Theme)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestLoadDotFile(t *testing.T) {
	_, workDir := isolate(t)
	writeFile(t, filepath.Join(workDir, ".tada.toml"), `log_format = "json"`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: `theme = `, wantErr: "loading project config file"},
		{name: "unknown key", content: `colour = "red"`, wantErr: "unknown keys: colour"},
		{name: "bad theme", content: `theme = "pink"`, wantErr: "invalid theme"},
		{name: "bad log format", content: `log_format = "xml"`, wantErr: "invalid log_format"},
		{name: "bad log level", content: `log_level = "verbose"`, wantErr: "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, workDir := isolate(t)
			writeFile(t, filepath.Join(workDir, FileName), tt.content)

			_, err := Load(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadBadEnvBool(t *testing.T) {
	isolate(t)
	t.Setenv("TADA_NO_COLOR", "maybe")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "TADA_NO_COLOR")
}

func TestBlankUserNameFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	writeFile(t, path, `user_name = "  "`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserName, cfg.UserName)
	assert.Equal(t, path, cfg.Source)
}
