package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/tickler/internal/config"
	"github.com/phrazzld/tickler/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: "+testSecret+"\n  token_lifetime_minutes: 5\n")

	out, err := execute(t, "", "token", "--config", path, "--subject", "alice")
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)

	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 5})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenCommand_AuthDisabled(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	_, err := execute(t, "", "token", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestConsoleCommand(t *testing.T) {
	path := writeConfig(t, "scheduler:\n  poll_interval_seconds: 3600\n")
	logFile := filepath.Join(t.TempDir(), "tickler.log")

	input := strings.Join([]string{
		"1", "Dentist", "Bring card", "01.01.2099 10:00", "15", "High",
		"2",
		"6",
	}, "\n") + "\n"

	out, err := execute(t, input, "console", "--config", path, "--log-file", logFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Task added! Task id: 1.")
	assert.Contains(t, out, "[1] Dentist - Bring card - High - Pending")

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"msg":"task added"`)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "", "token", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
