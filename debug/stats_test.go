package debug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	s := Sample()
	require.Positive(t, s.Goroutines)
	require.Positive(t, s.HeapSys)
}

func TestAttrs_OmitsUnknownRSS(t *testing.T) {
	attrs := Stats{Goroutines: 3, HeapAlloc: 2048}.Attrs()
	require.Len(t, attrs, 5)
	attrs = Stats{RSS: 1 << 20}.Attrs()
	require.Len(t, attrs, 6)
}
