package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	def := DefaultConfig()
	require.Equal(t, def.InputSize, cfg.InputSize)
	require.Equal(t, BackendONNX, cfg.Backend)
}

func TestSaveLoad_RoundTripWithClamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.ConfThreshold = 0.6
	cfg.InputSize = 600 // rounded up to a multiple of 32
	cfg.Backend = "GoCV"
	cfg.KeepHistory = true
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.6, got.ConfThreshold)
	require.Equal(t, 608, got.InputSize)
	require.Equal(t, BackendGoCV, got.Backend)
	require.True(t, got.KeepHistory)
}

func TestValidate_ClampsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfThreshold = 3
	cfg.IOUThreshold = -1
	cfg.InputSize = 0
	cfg.Backend = "tensorflow"
	cfg.WorkDir = " "
	require.NoError(t, cfg.Validate())
	require.Equal(t, 0.25, cfg.ConfThreshold)
	require.Equal(t, 0.45, cfg.IOUThreshold)
	require.Equal(t, 640, cfg.InputSize)
	require.Equal(t, BackendONNX, cfg.Backend)
	require.NotEmpty(t, cfg.WorkDir)

	cfg.ModelPath = ""
	require.Error(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DAMAGE_SCAN_MODEL", "/models/cars.onnx")
	t.Setenv("DAMAGE_SCAN_CONF", "0.4")
	t.Setenv("DAMAGE_SCAN_DEBUG", "true")
	t.Setenv("DAMAGE_SCAN_INPUT_SIZE", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, "/models/cars.onnx", cfg.ModelPath)
	require.Equal(t, 0.4, cfg.ConfThreshold)
	require.True(t, cfg.Debug)
	require.Equal(t, 640, cfg.InputSize)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg)
}
