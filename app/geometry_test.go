package app

import "testing"

func TestCenteredGeometry(t *testing.T) {
	cases := []struct {
		w, h, sw, sh int
		want         string
	}{
		{420, 260, 1920, 1080, "420x260+750+410"},
		{420, 260, 0, 0, "420x260+100+100"},
		{2000, 1200, 1920, 1080, "2000x1200+0+0"},
	}
	for _, c := range cases {
		if got := centeredGeometry(c.w, c.h, c.sw, c.sh); got != c.want {
			t.Fatalf("centeredGeometry(%d,%d,%d,%d) = %q, want %q", c.w, c.h, c.sw, c.sh, got, c.want)
		}
	}
}
