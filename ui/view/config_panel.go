package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/damage-scan-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the detection settings form and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

var backends = []string{config.BackendONNX, config.BackendGoCV}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applied  func(*config.Config)
	applyBtn *TButtonWidget
	backend  *TComboboxWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. applied, if set, runs after
// a successful save.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, applied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, applied: applied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	head := parent.Label(Txt("Detection settings"), Anchor("w"))
	Grid(head, Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++

	lbl := parent.Label(Txt("Backend"), Anchor("w"))
	Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.backend = parent.TCombobox(Values(backends), Width(14), State("readonly"))
	Grid(v.backend, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.backend.Current(backendIndex(c.Backend))
	row++

	makeRow := func(id, label, value string) {
		lbl := parent.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := parent.Text(Height(1), Width(24))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("modelPath", "Model (.onnx)", c.ModelPath)
	makeRow("labelsPath", "Labels file (empty = built-in)", c.LabelsPath)
	makeRow("runtimeLibrary", "ONNX Runtime library", c.RuntimeLibrary)
	makeRow("inputSize", "Input Size (multiple of 32)", fmt.Sprintf("%d", c.InputSize))
	makeRow("confThreshold", "Confidence (0-1)", fmt.Sprintf("%.2f", c.ConfThreshold))
	makeRow("iouThreshold", "NMS IoU (0-1)", fmt.Sprintf("%.2f", c.IOUThreshold))
	makeRow("keepHistory", "Keep History (true/false)", fmt.Sprintf("%t", c.KeepHistory))
	v.applyBtn = parent.TButton(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.backend != nil {
		if enabled {
			v.backend.Configure(State("readonly"))
		} else {
			v.backend.Configure(State("disabled"))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignString := func(id string, dst *string) {
		if s, ok := v.text(id); ok {
			*dst = s
		}
	}
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	if v.backend != nil {
		if idx, err := strconv.Atoi(v.backend.Current(nil)); err == nil && idx >= 0 && idx < len(backends) {
			cfg.Backend = backends[idx]
		}
	}
	assignString("modelPath", &cfg.ModelPath)
	assignString("labelsPath", &cfg.LabelsPath)
	assignString("runtimeLibrary", &cfg.RuntimeLibrary)
	assignInt("inputSize", &cfg.InputSize)
	assignFloat("confThreshold", &cfg.ConfThreshold)
	assignFloat("iouThreshold", &cfg.IOUThreshold)
	assignBool("keepHistory", &cfg.KeepHistory)
	if err := cfg.Validate(); err != nil {
		Dialogs{}.ShowError("Settings", err.Error())
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.applied != nil {
		v.applied(v.cfg)
	}
}

func backendIndex(name string) int {
	for i, b := range backends {
		if b == name {
			return i
		}
	}
	return 0
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
