package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kevinmichaelchen/trend-digest/internal/config"
	"github.com/kevinmichaelchen/trend-digest/internal/history"
	"github.com/kevinmichaelchen/trend-digest/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cmd := generateCmd(func() *config.Config { return cfg })
	cmd.SetArgs([]string{"--domains", "AI"})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestExplain_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cmd := explainCmd(func() *config.Config { return cfg })
	cmd.SetArgs([]string{"acme/alpha"})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestOpenStore_DefaultsToFile(t *testing.T) {
	cfg := &config.Config{HistoryPath: filepath.Join(t.TempDir(), "history.json")}

	store, closeStore, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &history.FileStore{}, store)
}
