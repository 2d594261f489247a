package main

import (
	"log/slog"
	"os"

	"github.com/soocke/damage-scan-go/app"
	"github.com/soocke/damage-scan-go/config"
)

func main() {
	path := os.Getenv("DAMAGE_SCAN_CONFIG")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stdout, level)
	if err != nil {
		// keep running on defaults; the settings panel can fix the file
		logger.Warn("config load failed, using defaults", "path", path, "error", err)
	}

	application := app.NewApp("Damage Scan", cfg, path, logger)
	application.Start()
}
