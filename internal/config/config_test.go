package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.SnapshotPath)
	assert.NotEmpty(t, cfg.SessionPath)
	assert.Equal(t, "zezo", cfg.RootHandle)
}

func TestValidate(t *testing.T) {
	cfg := &Config{SnapshotPath: "s.json", SessionPath: "sess", RootHandle: "zezo"}
	require.NoError(t, cfg.Validate())

	assert.Error(t, (&Config{SessionPath: "sess", RootHandle: "zezo"}).Validate())
	assert.Error(t, (&Config{SnapshotPath: "s.json", RootHandle: "zezo"}).Validate())
	assert.Error(t, (&Config{SnapshotPath: "s.json", SessionPath: "sess"}).Validate())
}
