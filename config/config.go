package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// AppName is used for config and data directories.
const AppName = "damage-scan"

// Detection backends.
const (
	BackendONNX = "onnx"
	BackendGoCV = "gocv"
)

// Config holds runtime configuration for detection and app behavior.
// Fields are loaded from a JSON file and may be overridden by DAMAGE_SCAN_*
// environment variables (a .env file in the working directory is honored).
type Config struct {
	Debug    bool `json:"debug"`
	DarkMode bool `json:"dark_mode"`

	// Model
	Backend        string  `json:"backend"`
	ModelPath      string  `json:"model_path"`
	LabelsPath     string  `json:"labels_path"` // one class name per line; empty uses the built-in list
	RuntimeLibrary string  `json:"runtime_library"`
	InputSize      int     `json:"input_size"`
	ConfThreshold  float64 `json:"conf_threshold"`
	IOUThreshold   float64 `json:"iou_threshold"`

	// Workspace for image.png / processed_image.png
	WorkDir     string `json:"work_dir"`
	KeepHistory bool   `json:"keep_history"`

	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		Backend:       BackendONNX,
		ModelPath:     filepath.Join("model", "best.onnx"),
		InputSize:     640,
		ConfThreshold: 0.25,
		IOUThreshold:  0.45,
		WorkDir:       filepath.Join(xdg.DataHome, AppName, "img"),
		KeepHistory:   false,
		WindowWidth:   800,
		WindowHeight:  800,
	}
}

// DefaultPath is the per-user config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.json")
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case BackendGoCV:
		c.Backend = BackendGoCV
	default:
		c.Backend = BackendONNX
	}
	if c.InputSize < 32 {
		c.InputSize = 640
	}
	// the model stride is 32
	if c.InputSize%32 != 0 {
		c.InputSize = (c.InputSize/32 + 1) * 32
	}
	if c.ConfThreshold <= 0 || c.ConfThreshold > 1 {
		c.ConfThreshold = 0.25
	}
	if c.IOUThreshold <= 0 || c.IOUThreshold > 1 {
		c.IOUThreshold = 0.45
	}
	if c.WindowWidth < 200 {
		c.WindowWidth = 800
	}
	if c.WindowHeight < 200 {
		c.WindowHeight = 800
	}
	if strings.TrimSpace(c.WorkDir) == "" {
		c.WorkDir = filepath.Join(xdg.DataHome, AppName, "img")
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("model_path is empty")
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig() with the environment overlay applied. On JSON error it
// returns defaults with the error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			_ = cfg.Validate()
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format, creating the directory.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// applyEnv overrides fields from DAMAGE_SCAN_* variables. Unparseable values are ignored.
func (c *Config) applyEnv() {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := os.LookupEnv(key); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				*dst = f
			}
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = i
			}
		}
	}
	boolean("DAMAGE_SCAN_DEBUG", &c.Debug)
	boolean("DAMAGE_SCAN_DARK_MODE", &c.DarkMode)
	str("DAMAGE_SCAN_BACKEND", &c.Backend)
	str("DAMAGE_SCAN_MODEL", &c.ModelPath)
	str("DAMAGE_SCAN_LABELS", &c.LabelsPath)
	str("DAMAGE_SCAN_RUNTIME_LIBRARY", &c.RuntimeLibrary)
	integer("DAMAGE_SCAN_INPUT_SIZE", &c.InputSize)
	float("DAMAGE_SCAN_CONF", &c.ConfThreshold)
	float("DAMAGE_SCAN_IOU", &c.IOUThreshold)
	str("DAMAGE_SCAN_WORK_DIR", &c.WorkDir)
	boolean("DAMAGE_SCAN_KEEP_HISTORY", &c.KeepHistory)
}
