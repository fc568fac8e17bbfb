package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "DEEPSEEK_API_KEY", "PORT", "SURREAL_URL", "HISTORY_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLMBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.LLMModel)
	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.LLMAPIKey)
	assert.NotEmpty(t, cfg.HistoryPath)
}

func TestLoad_KeyFallbackAndSurrealURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
	t.Setenv("SURREAL_URL", "ws://localhost:8000/rpc")

	cfg := Load()

	assert.Equal(t, "sk-deepseek", cfg.LLMAPIKey)
	assert.Equal(t, "ws://localhost:8000", cfg.SurrealURL)
}

func TestLoadOptions(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		want        Options
		expectError bool
	}{
		{
			name:    "json file with comma string domains",
			content: `{"domains": "Go, Rust ,", "days": 30, "prompt": "beginners"}`,
			want:    Options{Domains: DomainList{"Go", "Rust"}, Days: 30, Prompt: "beginners"},
		},
		{
			name:    "yaml file with list domains and range",
			content: "domains:\n  - AI\n  - AI\n  - Wasm\ndateRange: 2026-01-01..2026-02-01\n",
			want:    Options{Domains: DomainList{"AI", "AI", "Wasm"}, Days: 7, DateRange: "2026-01-01..2026-02-01"},
		},
		{
			name:    "empty file keeps defaults",
			content: "{}",
			want:    DefaultOptions(),
		},
		{
			name:        "malformed domains",
			content:     "domains: {a: b}\n",
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "opts.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			got, err := LoadOptions(path)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadOptions_MissingFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	opts, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	_, err = LoadOptions("does-not-exist.json")
	assert.ErrorContains(t, err, "reading options file")
}

func TestSplitDomains(t *testing.T) {
	assert.Equal(t, []string{"AI", "Rust", "AI"}, SplitDomains(" AI,Rust, ,AI "))
	assert.Nil(t, SplitDomains(" , "))
}
