package inference

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/damage-scan-go/assets"
	"github.com/soocke/damage-scan-go/config"
	"github.com/soocke/damage-scan-go/domain/detection"
)

// LoadLabels reads class names from path, or returns the built-in damage
// classes when path is empty.
func LoadLabels(path string) ([]string, error) {
	if path == "" {
		return assets.DamageLabels(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	labels := assets.ParseLabels(data)
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}

// New builds the detector selected by cfg.Backend. A broken labels file is
// logged and replaced by the built-in classes.
func New(cfg *config.Config, logger *slog.Logger) detection.Detector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	labels, err := LoadLabels(cfg.LabelsPath)
	if err != nil {
		if logger != nil {
			logger.Warn("labels fallback to built-in list", "path", cfg.LabelsPath, "error", err)
		}
		labels = assets.DamageLabels()
	}
	opts := OptionsFromConfig(cfg, labels)
	if cfg.Backend == config.BackendGoCV {
		return NewGoCVDetector(opts, logger)
	}
	return NewONNXDetector(opts, logger)
}

// Provider hands out a detector for the current config, rebuilding it when
// the detection settings changed since the last call.
type Provider struct {
	cfg    *config.Config
	logger *slog.Logger
	build  func(*config.Config, *slog.Logger) detection.Detector

	key     config.Config
	current detection.Detector
}

// NewProvider binds a provider to a live config pointer.
func NewProvider(cfg *config.Config, logger *slog.Logger) *Provider {
	return &Provider{cfg: cfg, logger: logger, build: New}
}

// Detector returns the cached detector or a fresh one if cfg changed.
func (p *Provider) Detector() detection.Detector {
	key := detectionKey(p.cfg)
	if p.current != nil && key == p.key {
		return p.current
	}
	if p.current != nil {
		if err := p.current.Close(); err != nil && p.logger != nil {
			p.logger.Warn("detector close failed", "error", err)
		}
	}
	p.current = p.build(p.cfg, p.logger)
	p.key = key
	return p.current
}

// Close releases the cached detector.
func (p *Provider) Close() error {
	if p.current == nil {
		return nil
	}
	err := p.current.Close()
	p.current = nil
	return err
}

// detectionKey keeps only the fields that affect the detector.
func detectionKey(cfg *config.Config) config.Config {
	if cfg == nil {
		return config.Config{}
	}
	return config.Config{
		Backend:        cfg.Backend,
		ModelPath:      cfg.ModelPath,
		LabelsPath:     cfg.LabelsPath,
		RuntimeLibrary: cfg.RuntimeLibrary,
		InputSize:      cfg.InputSize,
		ConfThreshold:  cfg.ConfThreshold,
		IOUThreshold:   cfg.IOUThreshold,
	}
}
