package releasenotes

import (
	"regexp"
	"strings"
)

// sectionTitle is the normalized level-2 heading text that opens the section.
const sectionTitle = "release notes"

var (
	level2Heading    = regexp.MustCompile(`^##\s+(.*)$`)
	level2Terminator = regexp.MustCompile(`^##(\s|$)`)
)

// ExtractSection returns the lines following the "## Release Notes" heading,
// up to but not including the next level-2 heading or the end of body.
// The heading text is matched case-insensitively. The boolean is false when
// body has no such heading; an empty section still reports true.
func ExtractSection(body string) (string, bool) {
	lines := splitLines(body)

	start := -1
	for i, line := range lines {
		if m := level2Heading.FindStringSubmatch(line); m != nil && normalize(m[1]) == sectionTitle {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if level2Terminator.MatchString(lines[i]) {
			end = i
			break
		}
	}

	return strings.Join(lines[start:end], "\n"), true
}

// splitLines splits on LF after folding CRLF, which GitHub uses for PR bodies
// edited in the browser.
func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
