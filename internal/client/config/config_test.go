package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"BIDSCURATOR_HOST", "BIDSCURATOR_API_KEY", "BIDSCURATOR_REQUEST_TIMEOUT", "BIDSCURATOR_LOGGING_LEVEL", "BIDSCURATOR_LOGGING_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "INFO", c.Logging.Level)
	assert.Equal(t, "text", c.Logging.Format)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: file.example.org
api_key: file-key
request_timeout: 5s
logging:
  level: WARN
  format: json
`), 0o600))

	t.Setenv("BIDSCURATOR_API_KEY", "env-key")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("host", "", "")
	fs.String("api-key", "", "")
	fs.Duration("timeout", 0, "")
	fs.String("log-format", "", "")
	require.NoError(t, fs.Parse([]string{"--host", "flag.example.org"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "flag.example.org", cfg.Host)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_BadFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated"), 0o600))

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantHost string
	}{
		{"host from key", Config{APIKey: "fw.example.org:abc"}, "fw.example.org"},
		{"host with port from key", Config{APIKey: "fw.example.org:8443:abc"}, "fw.example.org:8443"},
		{"explicit host wins", Config{Host: "h", APIKey: "fw.example.org:abc"}, "h"},
		{"bare key", Config{APIKey: "abc"}, ""},
		{"no key", Config{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Resolve()
			assert.Equal(t, tt.wantHost, tt.cfg.Host)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.Host = "h"
		c.APIKey = "k"
		return c
	}

	c := valid()
	require.NoError(t, c.Validate())

	c = valid()
	c.APIKey = ""
	require.ErrorContains(t, c.Validate(), "APIKey is not set")

	// without a key the host is missing too; the key is what to ask for
	c = valid()
	c.APIKey = ""
	c.Host = ""
	require.ErrorContains(t, c.Validate(), "APIKey is not set")

	c = valid()
	c.Host = ""
	require.ErrorContains(t, c.Validate(), "Host is not set")

	c = valid()
	c.Logging.Format = "xml"
	require.ErrorContains(t, c.Validate(), "Format")

	c = valid()
	c.RequestTimeout = 0
	require.ErrorContains(t, c.Validate(), "RequestTimeout")
}
