package app

import "fmt"

// centeredGeometry returns a Tk geometry string for a w x h window centered
// on a screen of the given size, or placed at +100+100 when it is unknown.
func centeredGeometry(w, h, screenW, screenH int) string {
	if screenW <= 0 || screenH <= 0 {
		return fmt.Sprintf("%dx%d+100+100", w, h)
	}
	x, y := (screenW-w)/2, (screenH-h)/2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return fmt.Sprintf("%dx%d+%d+%d", w, h, x, y)
}
