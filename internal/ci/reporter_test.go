package ci

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Annotations(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		emit func(r *Reporter)
		want string
	}{
		"error with title": {
			emit: func(r *Reporter) { r.Error("Release notes", "section not found") },
			want: "::error title=Release notes::section not found\n",
		},
		"notice without title": {
			emit: func(r *Reporter) { r.Notice("", "opted out") },
			want: "::notice::opted out\n",
		},
		"escapes message": {
			emit: func(r *Reporter) { r.Warning("", "100% done\nnext line\r") },
			want: "::warning::100%25 done%0Anext line%0D\n",
		},
		"escapes title": {
			emit: func(r *Reporter) { r.Error("a: b, c", "m") },
			want: "::error title=a%3A b%2C c::m\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var b strings.Builder
			tt.emit(&Reporter{w: &b})
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestReporter_SetOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output")
	r := &Reporter{w: &strings.Builder{}, outputPath: path}

	require.NoError(t, r.SetOutput("valid", "true"))
	require.NoError(t, r.SetOutput("fragment", "### Fixed\n- Bug"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^valid=true\nfragment<<(ghadelimiter_[0-9a-f-]{36})\n### Fixed\n- Bug\n(ghadelimiter_[0-9a-f-]{36})\n$`)
	m := pattern.FindStringSubmatch(string(data))
	require.NotNil(t, m, "unexpected output file:\n%s", data)
	assert.Equal(t, m[1], m[2])
}

func TestReporter_SkipsWithoutFiles(t *testing.T) {
	t.Parallel()

	r := &Reporter{w: &strings.Builder{}}
	assert.NoError(t, r.SetOutput("valid", "true"))
	assert.NoError(t, r.AppendSummary("# ok"))
}

func TestReporter_AppendSummary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.md")
	r := &Reporter{w: &strings.Builder{}, summaryPath: path}

	require.NoError(t, r.AppendSummary("### Release notes"))
	require.NoError(t, r.AppendSummary("- ok\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "### Release notes\n- ok\n", string(data))
}
