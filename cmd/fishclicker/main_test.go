package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectred/fishclicker/internal/fishing"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "fishclicker.yaml")
	body := "log_level: error\n" +
		"storage:\n  driver: sqlite\n  path: " + filepath.Join(dir, "save.db") + "\n" +
		"tuning_dir: " + filepath.Join(dir, "configs") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"-config", cfg, "-seed", "7"}, args...), &out)
	require.NoError(t, err, out.String())
	return out.String()
}

func TestCastPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	out := runCLI(t, cfg, "cast", "5")
	assert.Contains(t, out, "Cast #1:")
	assert.Contains(t, out, "Cast #5:")
	assert.Contains(t, out, "wonder what happens if you do this 10x?")

	out = runCLI(t, cfg, "cast", "5")
	assert.Contains(t, out, "Cast #10:")
	assert.Contains(t, out, "Milestone chest opened! Bonus +")
	assert.Contains(t, out, "No, not 10x in total, 5 x 10")

	out = runCLI(t, cfg, "stats")
	assert.Contains(t, out, "casts: 10")
	assert.Contains(t, out, "catch chance: 25.0%")
}

func TestBuyWithoutCoins(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "buy", "1")
	assert.Contains(t, out, "insufficient funds")
}

func TestBuyUnknownItem(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfg, "buy", "99"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown product")
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	runCLI(t, cfg, "cast", "12")

	save := filepath.Join(dir, "save.msgpack")
	out := runCLI(t, cfg, "export", save)
	assert.Contains(t, out, "exported 12 casts")

	other := writeConfig(t, filepath.Join(dir, "other"))
	out = runCLI(t, other, "import", save)
	assert.Contains(t, out, "imported 12 casts")
	assert.Contains(t, runCLI(t, other, "stats"), "casts: 12")
}

func TestCatalogListsEveryProduct(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "catalog")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, lines[0], "15")
}

func TestAutoRequiresUpgrade(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "auto", "50ms")
	assert.Contains(t, out, "Buy the Auto-Clicker first!")
}

func TestSimulate(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "simulate", "20", "50")
	assert.Contains(t, out, "50 trials x 20 casts")
	assert.Contains(t, out, "milestones: 100")
}

func TestOverridesFlow(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "-base-catch", "0.5", "stats")
	assert.Contains(t, out, "catch chance: 50.0%")
}

func TestUnknownCommand(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfg, "fly"}, &out)
	require.Error(t, err)
}

func TestDescribeCastMiss(t *testing.T) {
	lines := describeCast(fishing.Outcome{CastNumber: 3})
	require.Len(t, lines, 1)
	assert.Contains(t, missLines, strings.TrimPrefix(lines[0], "Cast #3: "))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "msgpack", string(formatFor("a.mpk", "json")))
	assert.Equal(t, "json", string(formatFor("a.json", "msgpack")))
	assert.Equal(t, "msgpack", string(formatFor("a.sav", "msgpack")))
}

func TestAdvise(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	out := runCLI(t, cfg, "advise")
	assert.Contains(t, out, "expected coins per cast:")
	assert.Contains(t, out, "Luck Booster")
	assert.NotContains(t, out, "Tropical Plants")
}
