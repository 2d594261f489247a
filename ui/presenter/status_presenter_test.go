package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soocke/damage-scan-go/ui/model"
)

type flag struct{ v bool }

func (f *flag) Busy() bool { return f.v }

type statusRecorder struct{ texts []string }

func (s *statusRecorder) SetStatus(text string) { s.texts = append(s.texts, text) }

func TestStatusPresenter_Lifecycle(t *testing.T) {
	doc := model.NewDocumentModel()
	busy := &flag{}
	view := &statusRecorder{}
	p := NewStatusPresenter(model.NewRunClock(), busy, doc, view)
	base := time.Unix(0, 0)

	p.Tick(base)
	require.Equal(t, []string{"No image loaded"}, view.texts)
	p.Tick(base) // unchanged text is not re-sent
	require.Len(t, view.texts, 1)

	doc.Replace(image.NewRGBA(image.Rect(0, 0, 1280, 960)), "car.png")
	p.Tick(base)
	require.Equal(t, "1280x960 (1.2 Mpx)", view.texts[len(view.texts)-1])

	busy.v = true
	p.Tick(base)
	p.Tick(base.Add(1500 * time.Millisecond))
	require.Equal(t, "Processing... 1.5s", view.texts[len(view.texts)-1])

	busy.v = false
	p.Tick(base.Add(2 * time.Second))
	require.Equal(t, "1280x960 (1.2 Mpx) | last run 2s, 1 runs in 2s", view.texts[len(view.texts)-1])
}

func TestLoop_TickSchedules(t *testing.T) {
	scheduled := 0
	l := NewLoop(nil, nil, func() { scheduled++ })
	l.Tick()
	require.Equal(t, 1, scheduled)

	var nilLoop *Loop
	nilLoop.Tick()
}
