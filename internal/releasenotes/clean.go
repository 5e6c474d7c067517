package releasenotes

import (
	"regexp"
	"strings"
)

var htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)

// CleanContent removes HTML comments, collapses every run of blank lines to
// a single empty line and trims the result. Whitespace-only lines count as
// blank. An unterminated "<!--" is left untouched.
func CleanContent(content string) string {
	stripped := stripComments(content)

	var b strings.Builder
	prevBlank := false
	for i, line := range splitLines(stripped) {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		if !blank {
			b.WriteString(line)
		}
		prevBlank = blank
	}

	return strings.TrimSpace(b.String())
}

func stripComments(s string) string {
	return htmlComment.ReplaceAllString(s, "")
}
