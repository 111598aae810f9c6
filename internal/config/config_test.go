package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnvDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("absent", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, "auto", cfg.Simulation.DefaultMode)
	assert.Equal(t, 2*time.Second, cfg.Algo.PollInterval)
	assert.Equal(t, "execute-api", cfg.Algo.AWS.Service)
	assert.Equal(t, "info", cfg.Env.Log.Level)
}

func TestLoadWithEnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
http:
  port: 9000
simulation:
  valuationDate: "2026-01-01"
algo:
  fillScoreURL: https://algo.example.com/fill
  pollInterval: 500ms
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))

	t.Setenv("PATSIM_HTTP_PORT", "9100")
	t.Setenv("PATSIM_ALGO_AWS_ACCESSKEYID", "AKIDEXAMPLE")
	t.Setenv("PATSIM_ENV_LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv("test", dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "https://algo.example.com/fill", cfg.Algo.FillScoreURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Algo.PollInterval)
	assert.Equal(t, "AKIDEXAMPLE", cfg.Algo.AWS.AccessKeyID)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	// untouched by the file
	assert.Equal(t, 60*time.Second, cfg.HTTP.Timeouts.IdleTimeout)

	valuation, err := cfg.Valuation()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), valuation)
}

func TestLoadWithEnvRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("simulation:\n  defaultMode: random\n"), 0o600))

	_, err := LoadWithEnv("bad", dir)
	assert.Error(t, err)
}

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"http": map[string]any{
			"maxRequestBodySize": 1,
			"timeouts":           map[string]any{"readTimeout": "10s"},
		},
		"algo": map[string]any{
			"fillScoreURL": "",
			"aws":          map[string]any{"secretAccessKey": ""},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "HTTP_MAXREQUESTBODYSIZE", want: "http.maxRequestBodySize"},
		{envKey: "HTTP_TIMEOUTS_READTIMEOUT", want: "http.timeouts.readTimeout"},
		{envKey: "ALGO_FILLSCOREURL", want: "algo.fillScoreURL"},
		{envKey: "ALGO_AWS_SECRETACCESSKEY", want: "algo.aws.secretAccessKey"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}
