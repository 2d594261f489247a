package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/soocke/damage-scan-go/domain/detection"
)

// Workspace file names.
const (
	WorkingName   = "image.png"
	AnnotatedName = "processed_image.png"
	historyDir    = "history"
)

// Store persists the working image and detection output under a directory.
type Store struct {
	dir     string
	history bool
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore returns a store rooted at dir. With history enabled every saved
// result is also kept as history/<id>.png plus a JSON report.
func NewStore(dir string, history bool, logger *slog.Logger) *Store {
	return &Store{dir: dir, history: history, logger: logger, now: time.Now}
}

// SetHistory toggles history archiving for later results.
func (s *Store) SetHistory(on bool) { s.history = on }

// Dir returns the workspace directory.
func (s *Store) Dir() string { return s.dir }

// WorkingPath is where the current working image is kept.
func (s *Store) WorkingPath() string { return filepath.Join(s.dir, WorkingName) }

// AnnotatedPath is where the last annotated image is kept.
func (s *Store) AnnotatedPath() string { return filepath.Join(s.dir, AnnotatedName) }

// Open decodes an image file, honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	if path == "" {
		return nil, &ImageLoadError{Path: path, Err: errors.New("no file selected")}
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &ImageLoadError{Path: path, Err: errors.New("image has no pixels")}
	}
	return img, nil
}

// Import decodes src and makes it the working image.
func (s *Store) Import(src string) (image.Image, error) {
	img, err := Open(src)
	if err != nil {
		return nil, err
	}
	if err := s.SaveWorking(img); err != nil {
		return nil, err
	}
	if s.logger != nil {
		b := img.Bounds()
		s.logger.Info("image imported", "src", src, "width", b.Dx(), "height", b.Dy())
	}
	return img, nil
}

// LoadWorking reads the working image back from disk.
func (s *Store) LoadWorking() (image.Image, error) {
	return Open(s.WorkingPath())
}

// SaveWorking writes img as the working image.
func (s *Store) SaveWorking(img image.Image) error {
	return s.save(s.WorkingPath(), img)
}

// SaveAnnotated writes the annotated result and, with history enabled, a
// copy plus a JSON report. It returns the history id or "".
func (s *Store) SaveAnnotated(res *detection.Result) (string, error) {
	if res == nil || res.Annotated == nil {
		return "", errors.New("no annotated image")
	}
	if err := s.save(s.AnnotatedPath(), res.Annotated); err != nil {
		return "", err
	}
	if !s.history {
		return "", nil
	}
	id := uuid.NewString()
	dir := filepath.Join(s.dir, historyDir)
	if err := s.save(filepath.Join(dir, id+".png"), res.Annotated); err != nil {
		return "", err
	}
	rep := Report{
		ID:         id,
		CreatedAt:  s.now().UTC(),
		Summary:    detection.Render(detection.Summarize(res.Detections)),
		Detections: res.Detections,
	}
	if err := writeJSON(filepath.Join(dir, id+".json"), rep); err != nil {
		return "", err
	}
	return id, nil
}

// Report is the JSON sidecar stored next to a history image.
type Report struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	Summary    string                `json:"summary"`
	Detections []detection.Detection `json:"detections"`
}

// LoadReport reads a history report by id.
func (s *Store) LoadReport(id string) (*Report, error) {
	f, err := os.Open(filepath.Join(s.dir, historyDir, id+".json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rep Report
	if err := json.NewDecoder(f).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &rep, nil
}

func (s *Store) save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if s.logger != nil {
		if st, err := os.Stat(path); err == nil {
			s.logger.Debug("image saved", "path", path, "size", humanize.Bytes(uint64(st.Size())))
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
