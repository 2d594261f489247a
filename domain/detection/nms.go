package detection

import (
	"sort"

	"github.com/soocke/damage-scan-go/domain/geometry"
)

// FilterConfidence drops detections below min.
func FilterConfidence(dets []Detection, min float64) []Detection {
	out := dets[:0:0]
	for _, d := range dets {
		if d.Confidence >= min {
			out = append(out, d)
		}
	}
	return out
}

// NonMaxSuppression keeps the highest-confidence box of every cluster of
// same-label boxes overlapping by more than iouThreshold. The result is sorted
// by descending confidence; the input slice is not modified.
func NonMaxSuppression(dets []Detection, iouThreshold float64) []Detection {
	if len(dets) == 0 {
		return nil
	}
	boxes := make([]Detection, len(dets))
	copy(boxes, dets)
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Confidence > boxes[j].Confidence })

	suppressed := make([]bool, len(boxes))
	kept := make([]Detection, 0, len(boxes))
	for i := range boxes {
		if suppressed[i] {
			continue
		}
		kept = append(kept, boxes[i])
		for j := i + 1; j < len(boxes); j++ {
			if suppressed[j] || boxes[j].Label != boxes[i].Label {
				continue
			}
			if geometry.IoU(boxes[i].Box, boxes[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}
	return kept
}
