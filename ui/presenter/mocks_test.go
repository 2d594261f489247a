package presenter

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/soocke/damage-scan-go/domain/detection"
)

type mockViewer struct {
	previews    []image.Image
	cropEnabled bool
	cropCalls   int
	info        string
}

func (v *mockViewer) SetPreview(img image.Image)   { v.previews = append(v.previews, img) }
func (v *mockViewer) SetCropEnabled(b bool)        { v.cropEnabled = b; v.cropCalls++ }
func (v *mockViewer) SetSelectionInfo(text string) { v.info = text }

func (v *mockViewer) last() image.Image {
	if len(v.previews) == 0 {
		return nil
	}
	return v.previews[len(v.previews)-1]
}

type mockNotifier struct{ titles, messages []string }

func (n *mockNotifier) ShowError(title, message string) {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

type mockStore struct {
	saved     []image.Image
	saveErr   error
	imported  image.Image
	importErr error
	annotated []*detection.Result
	historyID string
}

func (s *mockStore) SaveWorking(img image.Image) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, img)
	return nil
}

func (s *mockStore) Import(path string) (image.Image, error) {
	if s.importErr != nil {
		return nil, s.importErr
	}
	return s.imported, nil
}

func (s *mockStore) SaveAnnotated(res *detection.Result) (string, error) {
	s.annotated = append(s.annotated, res)
	return s.historyID, nil
}

type mockPicker struct {
	path string
	ok   bool
}

func (p mockPicker) PickImage() (string, bool) { return p.path, p.ok }

type fakeDetector struct {
	mu      sync.Mutex
	release chan struct{}
	result  *detection.Result
	err     error
	panics  bool
	calls   int
}

func (d *fakeDetector) Detect(ctx context.Context, img image.Image) (*detection.Result, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.release != nil {
		<-d.release
	}
	if d.panics {
		panic("boom")
	}
	return d.result, d.err
}

func (d *fakeDetector) Close() error { return nil }

type fixedSource struct{ d detection.Detector }

func (s fixedSource) Detector() detection.Detector { return s.d }

type imageSlot struct{ img image.Image }

func (s imageSlot) Image() image.Image { return s.img }

type mockResults struct {
	img     image.Image
	summary string
	shown   int
}

func (v *mockResults) ShowResults(img image.Image, summary string) {
	v.img, v.summary = img, summary
	v.shown++
}

type busyRecorder struct{ states []bool }

func (b *busyRecorder) SetBusy(v bool) { b.states = append(b.states, v) }

var errDisk = errors.New("disk full")
