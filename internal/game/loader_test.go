package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectred/fishclicker/internal/fishing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const defaultYAML = `
version: "1"
catch:
  base: 0.3
  bonus:
    11: 0.05
rarity:
  weights:
    common: 60
milestone:
  every: 10
  min: 8
  max: 20
`

func TestLoaderMissingFilesYieldBuiltins(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, rules, err := l.Resolve("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, fishing.DefaultRules(), rules)
}

func TestLoaderMissingRulesetFails(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, _, err := l.Resolve("nope", Overrides{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderLayering(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), defaultYAML)
	writeFile(t, l.Paths().RulesetPath("generous"), `
catch:
  base: 0.4
  bonus:
    8: 0.2
rarity:
  weights:
    legendary: 1
milestone:
  min: 15
`)

	raw, rules, err := l.Resolve("generous", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "1", raw.Version)

	assert.Equal(t, 0.4, rules.BaseCatch)
	assert.Equal(t, 0.85, rules.CatchCap)
	assert.Equal(t, 0.2, rules.CatchBonus[fishing.ItemLuckBooster])
	assert.Equal(t, 0.05, rules.CatchBonus[fishing.ItemLuckyAnchor])
	assert.Equal(t, 0.07, rules.CatchBonus[fishing.ItemCrystalLures])

	assert.Equal(t, 60.0, rules.BaseWeights[fishing.TierCommon])
	assert.Equal(t, 1.0, rules.BaseWeights[fishing.TierLegendary])
	assert.Equal(t, 20.0, rules.BaseWeights[fishing.TierUncommon])

	assert.Equal(t, 10, rules.MilestoneEvery)
	assert.Equal(t, 15, rules.MilestoneMin)
	assert.Equal(t, 20, rules.MilestoneMax)
	assert.Equal(t, 2*time.Second, rules.AutoBase)
}

func TestLoaderOverridesWin(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), defaultYAML)

	base, every, scale := 0.5, 5, 1.5
	_, rules, err := l.Resolve("", Overrides{BaseCatch: &base, MilestoneEvery: &every, PriceScale: &scale})
	require.NoError(t, err)
	assert.Equal(t, 0.5, rules.BaseCatch)
	assert.Equal(t, 5, rules.MilestoneEvery)
	assert.Equal(t, 8, rules.MilestoneMin)
	assert.Equal(t, 1.5, rules.PriceScale)
}

func TestLoaderRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), "catch: [not, a, map")
	_, err := l.LoadMerged("")
	require.Error(t, err)
}

func TestLoaderCacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), "catch:\n  base: 0.3\n")

	_, rules, err := l.Resolve("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 0.3, rules.BaseCatch)

	writeFile(t, l.Paths().DefaultPath(), "catch:\n  base: 0.35\n")
	_, rules, err = l.Resolve("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 0.3, rules.BaseCatch, "cached until invalidated")

	l.Invalidate()
	_, rules, err = l.Resolve("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 0.35, rules.BaseCatch)
}

func TestLoaderResolveInvalid(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)
	writeFile(t, l.Paths().DefaultPath(), "catch:\n  base: 0.9\n  cap: 0.5\n")
	_, _, err := l.Resolve("", Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catch.cap must be >= catch.base")
}

func TestNormalizeChecksMergedRules(t *testing.T) {
	// Each layer is fine on its own but the merged base exceeds the built-in cap.
	base := 0.9
	_, err := Normalize(RawConfig{Catch: CatchConfig{Base: &base}})
	require.Error(t, err)
	assert.ErrorIs(t, err, fishing.ErrInvalidRules)
}

func TestPathsFiles(t *testing.T) {
	p := Paths{BaseDir: "cfg"}
	assert.Equal(t, []string{filepath.Join("cfg", "games", "default.yaml")}, p.Files(""))
	assert.Equal(t, []string{
		filepath.Join("cfg", "games", "default.yaml"),
		filepath.Join("cfg", "games", "rulesets", "x.yaml"),
	}, p.Files("x"))
}
