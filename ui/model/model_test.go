package model

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soocke/damage-scan-go/domain/detection"
)

func TestDocumentModel_ReplaceBumpsRevision(t *testing.T) {
	m := NewDocumentModel()
	require.False(t, m.Loaded())
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.Equal(t, uint64(1), m.Replace(img, "a.png"))
	require.Equal(t, uint64(2), m.Replace(img, "crop"))
	require.True(t, m.Loaded())
	require.Equal(t, "crop", m.Source())

	var nilModel *DocumentModel
	require.Nil(t, nilModel.Image())
	require.Zero(t, nilModel.Replace(img, "x"))
}

func TestResultModel(t *testing.T) {
	m := NewResultModel()
	require.True(t, m.SetBusy(true))
	require.False(t, m.SetBusy(true))
	require.True(t, m.Busy())
	require.True(t, m.SetBusy(false))

	res := &detection.Result{}
	m.Set(res, "Detected:\ndent", "id-1", time.Second)
	require.Same(t, res, m.Last())
	require.Equal(t, "id-1", m.HistoryID())
	require.Equal(t, time.Second, m.Elapsed())
}

func TestRunClock_Lifecycle(t *testing.T) {
	m := NewRunClock()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	run, total := m.Values()
	require.Equal(t, 5*time.Second, run)
	require.Equal(t, 5*time.Second, total)
	require.True(t, m.Running())

	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	run, total = m.Values()
	require.Equal(t, 5*time.Second, run)
	require.Equal(t, 5*time.Second, total)
	require.Equal(t, 1, m.Runs())

	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	run, total = m.Values()
	require.Equal(t, 3*time.Second, run)
	require.Equal(t, 8*time.Second, total)

	m.OnTick(false, base.Add(13*time.Second))
	require.False(t, m.Running())
	require.Equal(t, 2, m.Runs())
}
