package assets

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
)

// DamageLabelsTxt holds the class names of the bundled damage model, one per
// line, in model output order.
//
//go:embed damage_labels.txt
var DamageLabelsTxt []byte

// DamageLabels returns the built-in class names.
func DamageLabels() []string {
	return ParseLabels(DamageLabelsTxt)
}

// ParseLabels splits a labels file into trimmed, non-empty lines. Lines
// starting with '#' are comments.
func ParseLabels(data []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
