package main

import (
	"bytes"
	"clientreg/internal/backends"
	"clientreg/internal/flow"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunImport(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, backends.BackendMemory)
	path := filepath.Join(t.TempDir(), "clients.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
clients:
  - name: Ana Gómez
    email: ana@x.com
    phone: "5551234"
`), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(""), &out, []string{CmdImport, path}))
	assert.Contains(t, out.String(), "Ana Gómez")
	assert.Contains(t, out.String(), "Active")
}

func TestRunListEmpty(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, backends.BackendMemory)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(""), &out, []string{CmdList, "-filter", "[?active]"}))
	assert.Equal(t, flow.MsgNoClients+"\n", out.String())
}

func TestRunShell(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, backends.BackendMemory)
	var out bytes.Buffer
	in := strings.NewReader("register\nAna\na@x.com\n1\nlist\nquit\n")
	require.NoError(t, run(context.Background(), in, &out, []string{CmdShell}))
	assert.Contains(t, out.String(), flow.MsgRegistered)
	assert.Contains(t, out.String(), "a@x.com")
}

func TestRunUsage(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, backends.BackendMemory)
	var out bytes.Buffer
	assert.ErrorIs(t, run(context.Background(), nil, &out, []string{"frobnicate"}), errUsage)
	assert.ErrorIs(t, run(context.Background(), nil, &out, []string{CmdImport}), errUsage)
}

func TestRunInvalidBackend(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, "sqlite")
	err := run(context.Background(), nil, &bytes.Buffer{}, []string{CmdList})
	assert.Error(t, err)
}

func TestRunServeStopsOnCancel(t *testing.T) {
	t.Setenv(backends.ClientBackendEnvKey, backends.BackendMemory)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, run(ctx, nil, &bytes.Buffer{}, []string{CmdServe, "-port", "39181"}))
}
