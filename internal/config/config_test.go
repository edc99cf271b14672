package config

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("skill", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{
		"-a", ":9090",
		"-l", "debug",
		"-bucket", "videos",
		"-region", "eu-west-1",
		"-playlist", "/etc/skill/playlist.toml",
		"-legacy-selection-range",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "videos", cfg.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "/etc/skill/playlist.toml", cfg.PlaylistPath)
	assert.True(t, cfg.LegacySelectionRange)
	assert.Equal(t, "en", cfg.DefaultLocale)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	t.Setenv("RUN_ADDR", ":7070")
	t.Setenv("S3_PERSISTENCE_BUCKET", "env-bucket")
	t.Setenv("DEFAULT_LOCALE", "de")
	t.Setenv("LEGACY_SELECTION_RANGE", "true")

	cfg, err := Parse(newFlagSet(), []string{"-a", ":9090", "-bucket", "flag-bucket"})
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.RunAddr)
	assert.Equal(t, "env-bucket", cfg.Bucket)
	assert.Equal(t, "de", cfg.DefaultLocale)
	assert.True(t, cfg.LegacySelectionRange)
}

func TestParse_BadFlag(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-nope"})
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("S3_PERSISTENCE_REGION", "us-west-2")
	t.Setenv("LANGUAGES_DIR", "/opt/languages")
	t.Setenv("LEGACY_SELECTION_RANGE", "1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "/opt/languages", cfg.LanguagesDir)
	assert.True(t, cfg.LegacySelectionRange)
	assert.Equal(t, ":8080", cfg.RunAddr)
}

func TestBadLegacySelectionRangeEnv(t *testing.T) {
	t.Setenv("LEGACY_SELECTION_RANGE", "yes")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEGACY_SELECTION_RANGE")

	_, err = Parse(newFlagSet(), nil)
	assert.Error(t, err)
}
