package storage

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/soocke/damage-scan-go/domain/detection"
	"github.com/soocke/damage-scan-go/domain/geometry"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, A: 255})
	return img
}

func TestImport_WritesWorkingImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "car.jpg")
	require.NoError(t, imaging.Save(testImage(30, 20), src))

	s := NewStore(filepath.Join(t.TempDir(), "work"), false, nil)
	img, err := s.Import(src)
	require.NoError(t, err)
	require.Equal(t, image.Pt(30, 20), img.Bounds().Size())

	back, err := s.LoadWorking()
	require.NoError(t, err)
	require.Equal(t, image.Pt(30, 20), back.Bounds().Size())
}

func TestImport_NotAnImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	s := NewStore(t.TempDir(), false, nil)
	_, err := s.Import(src)
	var loadErr *ImageLoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, src, loadErr.Path)
	_, statErr := os.Stat(s.WorkingPath())
	require.True(t, os.IsNotExist(statErr))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	var loadErr *ImageLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestSaveAnnotated_WithoutHistory(t *testing.T) {
	s := NewStore(t.TempDir(), false, nil)
	id, err := s.SaveAnnotated(&detection.Result{Annotated: testImage(8, 8)})
	require.NoError(t, err)
	require.Empty(t, id)
	_, err = os.Stat(s.AnnotatedPath())
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(), historyDir))
	require.True(t, os.IsNotExist(err))
}

func TestSaveAnnotated_HistoryReport(t *testing.T) {
	s := NewStore(t.TempDir(), true, nil)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	dets := []detection.Detection{
		{Label: "dent", Confidence: 0.8, Box: geometry.Rect{Right: 4, Bottom: 4}},
		{Label: "dent", Confidence: 0.6, Box: geometry.Rect{Left: 4, Right: 8, Bottom: 4}},
	}
	id, err := s.SaveAnnotated(&detection.Result{Annotated: testImage(8, 8), Detections: dets})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = os.Stat(filepath.Join(s.Dir(), historyDir, id+".png"))
	require.NoError(t, err)
	rep, err := s.LoadReport(id)
	require.NoError(t, err)
	require.Equal(t, id, rep.ID)
	require.True(t, fixed.Equal(rep.CreatedAt))
	require.Equal(t, "Detected:\n2x - dent", rep.Summary)
	require.Len(t, rep.Detections, 2)
}

func TestSaveAnnotated_NilResult(t *testing.T) {
	s := NewStore(t.TempDir(), false, nil)
	_, err := s.SaveAnnotated(nil)
	require.Error(t, err)
}
