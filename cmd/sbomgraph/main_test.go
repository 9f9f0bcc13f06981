package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootLogFormat(t *testing.T) {
	t.Cleanup(func() {
		logLevel.Set(slog.LevelInfo)
		setLogger(os.Stderr, "text") //nolint:errcheck
	})
	in := filepath.Join(t.TempDir(), "image.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"software": [{"UUID": "a", "installPath": ["/bin/a"]}]}`), 0o644))

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--log-format", "json", "resolve", in})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	line, _, _ := bytes.Cut(stderr.Bytes(), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(line, &rec))
	assert.Equal(t, "Resolved relationships", rec["msg"])

	cmd = newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-format", "xml", "resolve", in})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
