package releasenotes

import (
	"fmt"
	"strings"
	"testing"
)

// generateBody builds a PR description with the given number of entries
// spread across every category, padded with comments and prose.
func generateBody(entryCount int) string {
	var b strings.Builder

	b.WriteString("## Description\nBenchmark body\n\n## Release Notes\n\n")
	b.WriteString("<!-- Use Added, Changed, Deprecated, Removed, Fixed or Security -->\n")

	cats := Categories()
	for i := 0; i < entryCount; i++ {
		if i%10 == 0 {
			fmt.Fprintf(&b, "\n### %s\n\n", cats[(i/10)%len(cats)])
		}
		fmt.Fprintf(&b, "- Entry %d with some description text for the changelog\n", i)
	}

	b.WriteString("\n## Related Issues\nFixes #1\n")
	return b.String()
}

func BenchmarkValidate(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		body := generateBody(size)
		b.Run(fmt.Sprintf("entries_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if r := Validate(body); !r.Valid {
					b.Fatalf("unexpected invalid result: %s", r.Message)
				}
			}
		})
	}
}

func BenchmarkFormatForChangelog(b *testing.B) {
	r := Validate(generateBody(500))
	if !r.Valid {
		b.Fatalf("unexpected invalid result: %s", r.Message)
	}
	attr := Attribution{Number: 42, URL: "https://github.com/o/r/pull/42", Author: "dev", AuthorURL: "https://github.com/dev"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FormatForChangelog(r.Categories, attr)
	}
}
