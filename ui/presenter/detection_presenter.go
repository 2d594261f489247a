package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/soocke/damage-scan-go/domain/detection"
	"github.com/soocke/damage-scan-go/ui/model"
)

// DetectorSource hands out the detector for the current settings.
type DetectorSource interface {
	Detector() detection.Detector
}

// ImageSource supplies the current working image.
type ImageSource interface {
	Image() image.Image
}

// ResultStore persists annotated output; it returns a history id or "".
type ResultStore interface {
	SaveAnnotated(res *detection.Result) (string, error)
}

// ResultView displays a finished run.
type ResultView interface {
	ShowResults(annotated image.Image, summary string)
}

// BusyListener is told when a run starts and ends.
type BusyListener interface {
	SetBusy(busy bool)
}

type detectionTask struct {
	detector detection.Detector
	img      image.Image
}

type detectionResult struct {
	res      *detection.Result
	err      error
	duration time.Duration
}

// DetectionPresenter runs detection on a worker goroutine and delivers the
// outcome on the UI thread through Poll, called from the Loop tick.
type DetectionPresenter struct {
	source  DetectorSource
	images  ImageSource
	store   ResultStore
	view    ResultView
	notify  Notifier
	results *model.ResultModel
	logger  *slog.Logger

	listeners []BusyListener

	workerOnce sync.Once
	closeOnce  sync.Once
	closed     bool
	workCh     chan detectionTask
	resultCh   chan detectionResult
}

// NewDetectionPresenter constructs a detection presenter.
func NewDetectionPresenter(source DetectorSource, images ImageSource, store ResultStore, view ResultView, notify Notifier, results *model.ResultModel, logger *slog.Logger, listeners ...BusyListener) *DetectionPresenter {
	if results == nil {
		results = model.NewResultModel()
	}
	return &DetectionPresenter{
		source:    source,
		images:    images,
		store:     store,
		view:      view,
		notify:    notify,
		results:   results,
		logger:    logger,
		listeners: listeners,
		workCh:    make(chan detectionTask, 1),
		resultCh:  make(chan detectionResult, 1),
	}
}

// AddBusyListener registers l for busy transitions.
func (p *DetectionPresenter) AddBusyListener(l BusyListener) {
	if p != nil && l != nil {
		p.listeners = append(p.listeners, l)
	}
}

// Busy reports whether a run is in flight.
func (p *DetectionPresenter) Busy() bool { return p != nil && p.results.Busy() }

// Process starts a run on the current image. It is ignored while busy.
func (p *DetectionPresenter) Process() {
	if p == nil || p.source == nil || p.images == nil {
		return
	}
	if p.closed || p.results.Busy() {
		return
	}
	img := p.images.Image()
	if img == nil {
		p.fail("Process image", errors.New("no image loaded"))
		return
	}
	det := p.source.Detector()
	if det == nil {
		p.fail("Process image", detection.ModelUnavailable(errors.New("no detector configured")))
		return
	}
	p.ensureWorker()
	p.setBusy(true)
	p.workCh <- detectionTask{detector: det, img: img}
}

// Poll drains a finished run, if any. Must be called on the UI thread.
func (p *DetectionPresenter) Poll() {
	if p == nil {
		return
	}
	select {
	case res := <-p.resultCh:
		p.handleResult(res)
	default:
	}
}

// Close stops the worker goroutine.
func (p *DetectionPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed = true
		close(p.workCh)
	})
}

func (p *DetectionPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *DetectionPresenter) runWorker() {
	for task := range p.workCh {
		p.resultCh <- p.execute(task)
	}
}

func (p *DetectionPresenter) execute(task detectionTask) (out detectionResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("detection panic", "panic", r, "stack", string(debug.Stack()))
			}
			out = detectionResult{err: detection.InferenceError(fmt.Errorf("panic: %v", r))}
		}
		out.duration = time.Since(start)
	}()
	res, err := task.detector.Detect(context.Background(), task.img)
	if err == nil && res == nil {
		err = detection.InferenceError(errors.New("detector returned no result"))
	}
	return detectionResult{res: res, err: err}
}

func (p *DetectionPresenter) handleResult(r detectionResult) {
	p.setBusy(false)
	if r.err != nil {
		if p.logger != nil {
			p.logger.Error("detection", "error", r.err, "elapsed", r.duration.String())
		}
		p.fail(errorTitle(r.err), r.err)
		return
	}
	summary := detection.Render(detection.Summarize(r.res.Detections))
	var historyID string
	if p.store != nil {
		id, err := p.store.SaveAnnotated(r.res)
		if err != nil && p.logger != nil {
			p.logger.Warn("save annotated image", "error", err)
		}
		historyID = id
	}
	p.results.Set(r.res, summary, historyID, r.duration)
	if p.logger != nil {
		p.logger.Info("detection finished", "detections", len(r.res.Detections), "elapsed", r.duration.String(), "history", historyID)
	}
	if p.view != nil {
		annotated := r.res.Annotated
		if annotated == nil {
			annotated = p.images.Image()
		}
		p.view.ShowResults(annotated, summary)
	}
}

func (p *DetectionPresenter) setBusy(b bool) {
	if !p.results.SetBusy(b) {
		return
	}
	for _, l := range p.listeners {
		l.SetBusy(b)
	}
}

func (p *DetectionPresenter) fail(title string, err error) {
	if p.notify != nil {
		p.notify.ShowError(title, err.Error())
	}
}

func errorTitle(err error) string {
	switch {
	case errors.Is(err, detection.ErrModelUnavailable):
		return "Model unavailable"
	case errors.Is(err, detection.ErrInference):
		return "Detection failed"
	default:
		return "Process image"
	}
}
