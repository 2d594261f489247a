package detection

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

func det(label string, conf float64, r geometry.Rect) Detection {
	return Detection{Label: label, Confidence: conf, Box: r}
}

func TestSummarize_RenderFirstSeenOrder(t *testing.T) {
	r1 := geometry.Rect{Right: 10, Bottom: 10}
	r2 := geometry.Rect{Left: 20, Right: 30, Bottom: 10}
	r3 := geometry.Rect{Top: 40, Right: 10, Bottom: 50}
	s := Summarize([]Detection{det("dent", 0.9, r1), det("dent", 0.8, r2), det("scratch", 0.7, r3)})

	require.Equal(t, 2, s.Count("dent"))
	require.Equal(t, 1, s.Count("scratch"))
	require.Equal(t, 3, s.Total())
	require.Equal(t, []string{"2x - dent", "scratch"}, s.Lines())
	require.Equal(t, "Detected:\n2x - dent\nscratch", Render(s))
}

func TestSummarize_OrderFollowsFirstOccurrence(t *testing.T) {
	dets := []Detection{det("scratch", 0.5, geometry.Rect{}), det("dent", 0.5, geometry.Rect{}), det("scratch", 0.5, geometry.Rect{})}
	require.Equal(t, []string{"2x - scratch", "dent"}, Summarize(dets).Lines())
}

func TestRender_Empty(t *testing.T) {
	out := Render(Summarize(nil))
	require.True(t, strings.HasPrefix(out, SummaryHeader))
	require.Equal(t, "Detected:\nNo damage found", out)
}

func TestNonMaxSuppression(t *testing.T) {
	a := det("dent", 0.9, geometry.Rect{Right: 10, Bottom: 10})
	b := det("dent", 0.6, geometry.Rect{Left: 1, Right: 11, Bottom: 10})
	c := det("scratch", 0.7, geometry.Rect{Left: 1, Right: 11, Bottom: 10})
	d := det("dent", 0.5, geometry.Rect{Left: 50, Top: 50, Right: 60, Bottom: 60})

	kept := NonMaxSuppression([]Detection{b, a, c, d}, 0.5)
	require.Equal(t, []Detection{a, c, d}, kept)
	require.Nil(t, NonMaxSuppression(nil, 0.5))
}

func TestFilterConfidence(t *testing.T) {
	in := []Detection{det("a", 0.2, geometry.Rect{}), det("b", 0.5, geometry.Rect{}), det("c", 0.9, geometry.Rect{})}
	out := FilterConfidence(in, 0.5)
	require.Len(t, out, 2)
	require.Equal(t, "b", out[0].Label)
	require.Len(t, in, 3)
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("no such file")
	err := fmt.Errorf("process: %w", ModelUnavailable(cause))
	require.ErrorIs(t, err, ErrModelUnavailable)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrInference)
	require.Contains(t, err.Error(), "no such file")

	require.ErrorIs(t, InferenceError(nil), ErrInference)
	require.Equal(t, ErrInference.Error(), InferenceError(nil).Error())
}
