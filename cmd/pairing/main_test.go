package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/infrastructure/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResultsListAndShow(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 7, 8, 9, 10, 11, 0, time.Local)
	_, err := storage.NewFS(dir).Save(context.Background(), &domain.Report{
		SessionCode: "abc",
		CreatedAt:   ts,
		Results: [domain.PhaseCount]domain.PhaseResult{
			{Entries: []domain.Pairing{{Target: "target1", Item: "pair1"}}},
			{Phase: 1},
		},
	})
	require.NoError(t, err)

	out, err := execute(t, "results", "list", "--results-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "abc_2025-07-08_09-10-11.txt")

	out, err = execute(t, "results", "show", "abc_2025-07-08_09-10-11.txt", "--results-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Phase 1 Results:\ntarget1 -> pair1\n\nPhase 2 Results:\n", out)
}

func TestResultsListEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	out, err := execute(t, "results", "--results-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No results")
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("results_dir: from-file\nlog_level: warn\n"), 0o644))
	dir := t.TempDir()

	_, err := execute(t, "results", "--config", path, "--results-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ResultsDir)
	assert.Equal(t, "warn", cfg.LogLevel)

	_, err = execute(t, "results", "--log-level", "loud")
	assert.Error(t, err)
}
