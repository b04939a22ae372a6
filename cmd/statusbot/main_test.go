// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/statusbot/internal/audit"
	"github.com/ManuGH/statusbot/internal/config"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
discord:
  token: "bot-secret"
  appId: "123456789012345678"
  guildId: "223456789012345678"
catalog:
  baseUrl: "https://api.example.com/v1"
  token: "catalog-secret"
  shopId: "shop-1"
access:
  allowedUsers: ["323456789012345678"]
api:
  listenAddr: ""
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "statusbot v")
}

func TestConfigValidate_DumpMasksSecrets(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := runCLI(t, "config", "validate", "--config", path, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "shop-1")
	assert.NotContains(t, out, "bot-secret")
	assert.NotContains(t, out, "catalog-secret")
}

func TestConfigValidate_RejectsUnknownField(t *testing.T) {
	path := writeConfig(t, testConfig+"bogus: true\n")

	_, err := runCLI(t, "config", "validate", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownConfigField)
}

func TestWorkflowOptions_EntryModes(t *testing.T) {
	base := config.Defaults().Workflow

	base.EntryMode = config.EntryModePrompt
	assert.True(t, workflowOptions(base).PromptFirst)

	base.EntryMode = config.EntryModeAuto
	assert.False(t, workflowOptions(base).PromptFirst)

	base.EntryMode = config.EntryModeUpfront
	base.SelectionTimeout = 5 * time.Second
	opts := workflowOptions(base)
	assert.False(t, opts.PromptFirst)
	assert.Equal(t, workflow.MinSelectionTimeout, opts.SelectionTimeout)
}

func TestAuditRecent_ListsChangesForProduct(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()
	store, err := audit.OpenStore(ctx, dbPath)
	require.NoError(t, err)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, audit.Change{
		SessionID: "s1", ActorID: "u1", ProductID: "7", ProductName: "Widget",
		Text: "Back soon", Color: "orange", Result: "applied", Reason: "R_NONE", At: at,
	}))
	require.NoError(t, store.Record(ctx, audit.Change{
		SessionID: "s2", ActorID: "u2", ProductID: "9", ProductName: "Gadget",
		Text: "Sold out", Color: "red", Result: "failed", Reason: "R_UPDATE_FAILED", At: at.Add(time.Minute),
	}))
	require.NoError(t, store.Close())

	path := writeConfig(t, testConfig+"audit:\n  dbPath: \""+filepath.ToSlash(dbPath)+"\"\n")
	out, err := runCLI(t, "audit", "recent", "--config", path, "--product", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget (7)")
	assert.Contains(t, out, "Back soon")
	assert.NotContains(t, out, "Gadget")

	out, err = runCLI(t, "audit", "recent", "--config", path, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Gadget (9)")
	assert.NotContains(t, out, "Widget")
}

func TestAuditRecent_RequiresStore(t *testing.T) {
	path := writeConfig(t, testConfig+"audit:\n  dbPath: \"\"\n")
	_, err := runCLI(t, "audit", "recent", "--config", path)
	assert.ErrorIs(t, err, errAuditDisabled)
}
