package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDamageLabels(t *testing.T) {
	labels := DamageLabels()
	require.NotEmpty(t, labels)
	require.Equal(t, "dent", labels[0])
}

func TestParseLabels_SkipsBlankAndComments(t *testing.T) {
	got := ParseLabels([]byte("# classes\n dent \n\nscratch\r\n"))
	require.Equal(t, []string{"dent", "scratch"}, got)
}
