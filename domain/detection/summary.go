package detection

import (
	"fmt"
	"strings"
)

// SummaryHeader is the first line of every rendered summary.
const SummaryHeader = "Detected:"

// noDamage is rendered under the header when nothing was found.
const noDamage = "No damage found"

// LabelCount is one row of a Summary.
type LabelCount struct {
	Label string
	Count int
}

// Summary counts detections per label, keeping first-seen label order.
type Summary struct {
	Rows []LabelCount
}

// Summarize groups detections by label.
func Summarize(dets []Detection) Summary {
	idx := make(map[string]int, len(dets))
	var s Summary
	for _, d := range dets {
		if i, ok := idx[d.Label]; ok {
			s.Rows[i].Count++
			continue
		}
		idx[d.Label] = len(s.Rows)
		s.Rows = append(s.Rows, LabelCount{Label: d.Label, Count: 1})
	}
	return s
}

// Count returns the occurrences of label.
func (s Summary) Count(label string) int {
	for _, r := range s.Rows {
		if r.Label == label {
			return r.Count
		}
	}
	return 0
}

// Total is the number of detections summarized.
func (s Summary) Total() int {
	n := 0
	for _, r := range s.Rows {
		n += r.Count
	}
	return n
}

// Lines formats one line per label: "{n}x - {label}" for repeats, else the label.
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		if r.Count > 1 {
			lines = append(lines, fmt.Sprintf("%dx - %s", r.Count, r.Label))
		} else {
			lines = append(lines, r.Label)
		}
	}
	return lines
}

// Render produces the header followed by Lines, newline separated.
func Render(s Summary) string {
	var b strings.Builder
	b.WriteString(SummaryHeader)
	lines := s.Lines()
	if len(lines) == 0 {
		lines = []string{noDamage}
	}
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(l)
	}
	return b.String()
}
