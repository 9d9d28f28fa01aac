package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/migrate"
)

var errNoDB = errors.New("database unavailable")

// newTestContext returns a context whose connect always fails and counts its calls.
func newTestContext(host string) (*commandContext, *int) {
	calls := 0
	cmdCtx := &commandContext{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: config.AppConfig{Postgres: config.DBConfig{Host: host}},
		connect: func(context.Context, config.DBConfig, *slog.Logger) (*sql.DB, error) {
			calls++
			return nil, errNoDB
		},
	}
	return cmdCtx, &calls
}

func execute(cmdCtx *commandContext, stdin string, args ...string) (string, error) {
	root := newRootCmd(cmdCtx)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestIsLikelyRemoteHost(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"":                  false,
		"localhost":         false,
		"127.0.0.1":         false,
		"::1":               false,
		"db.local":          false,
		"127.0.0.2":         false,
		"10.0.0.5":          true,
		"db.prod.internal":  true,
		"postgres.example.": true,
	}
	for host, want := range tests {
		assert.Equal(t, want, isLikelyRemoteHost(host), host)
	}
}

func TestRemoteGuard(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, remoteGuard{host: "localhost", out: &out}.check("seed"))
	assert.Empty(t, out.String())

	err := remoteGuard{host: "db.prod", out: &out}.check("seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--allow-remote")

	err = remoteGuard{host: "db.prod", allow: true, in: strings.NewReader("nope\n"), out: &out}.check("seed")
	require.EqualError(t, err, "aborted by user")

	out.Reset()
	require.NoError(t, remoteGuard{host: "db.prod", allow: true, in: strings.NewReader("db.prod\n"), out: &out}.check("seed"))
	assert.Contains(t, out.String(), "WARNING")
}

func TestMigrate_RefusesRemoteHost(t *testing.T) {
	cmdCtx, calls := newTestContext("db.prod")
	_, err := execute(cmdCtx, "", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--allow-remote")
	assert.Zero(t, *calls)
}

func TestMigrate_ConnectFailure(t *testing.T) {
	cmdCtx, calls := newTestContext("localhost")
	_, err := execute(cmdCtx, "", "migrate")
	require.ErrorIs(t, err, errNoDB)
	assert.Equal(t, 1, *calls)
}

func TestSeed_InvalidFileFailsBeforeConnecting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers:\n  - name: A\n"), 0o600))

	cmdCtx, calls := newTestContext("localhost")
	_, err := execute(cmdCtx, "", "seed", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner is required")
	assert.Zero(t, *calls)

	_, err = execute(cmdCtx, "", "seed", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open fixtures")
	assert.Zero(t, *calls)
}

func TestSeed_DefaultFixturesReachDatabase(t *testing.T) {
	cmdCtx, calls := newTestContext("localhost")
	_, err := execute(cmdCtx, "", "seed")
	require.ErrorIs(t, err, errNoDB)
	assert.Equal(t, 1, *calls)
}

func TestVersion(t *testing.T) {
	cmdCtx, _ := newTestContext("localhost")
	out, err := execute(cmdCtx, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "serverboard-admin dev")
}

func TestPrintServers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printServers(&buf, nil))
	assert.Equal(t, "no servers found\n", buf.String())

	buf.Reset()
	created := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	require.NoError(t, printServers(&buf, []*model.Server{{ID: 42, Name: "Alpha", Owner: "alice", CreatedAt: created}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "OWNER", "CREATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"42", "Alpha", "alice", "2026-03-01", "18:30"}, strings.Fields(lines[1]))

	buf.Reset()
	require.NoError(t, printServersJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintMigrationStatus(t *testing.T) {
	cmd := newMigrateCmd(&commandContext{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, printMigrationStatus(cmd, []migrate.Status{
		{Version: "0001_servers", Applied: true},
		{Version: "0002_timetable_games", Applied: false},
	}))
	assert.Contains(t, buf.String(), "0001_servers")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0002_timetable_games", "no"}, strings.Fields(lines[2]))
}
