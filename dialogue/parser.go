// Package dialogue turns generated script text into ordered speaker lines.
package dialogue

import (
	"regexp"
	"strings"
)

// linePattern matches "SPEAKER: (stage direction) text". Only the first
// parenthetical directly after the colon is dropped, and it ends at the first ")".
// A ")" inside a stage direction or a second aside is not handled specially;
// keep it that way until script authors agree on a richer grammar.
var linePattern = regexp.MustCompile(`^([A-Z]+):\s*(?:\([^)]+\)\s*)?(.*)`)

// Line is one spoken line attributed to a speaker.
type Line struct {
	Speaker string `json:"speaker"`
	Text    string `json:"dialogue"`
}

// Parse extracts speaker lines from a script in file order. Lines that do not
// look like "SPEAKER: ..." and lines with nothing left to say are skipped.
func Parse(script string) []Line {
	var lines []Line
	for _, raw := range strings.Split(strings.TrimSpace(script), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		text := strings.TrimSpace(match[2])
		if text == "" {
			continue
		}
		lines = append(lines, Line{Speaker: match[1], Text: text})
	}
	return lines
}
