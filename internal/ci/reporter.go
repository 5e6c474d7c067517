package ci

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Reporter writes GitHub Actions workflow commands, step outputs and the
// job summary. Output and summary writes are skipped when their file
// variables are unset, so a Reporter is safe to use outside CI.
type Reporter struct {
	w           io.Writer
	outputPath  string
	summaryPath string
}

// NewReporter returns a Reporter writing workflow commands to w and
// appending outputs and summaries to the files named by GITHUB_OUTPUT and
// GITHUB_STEP_SUMMARY.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:           w,
		outputPath:  os.Getenv(EnvOutput),
		summaryPath: os.Getenv(EnvStepSummary),
	}
}

// Error emits an ::error annotation.
func (r *Reporter) Error(title, message string) {
	r.command("error", title, message)
}

// Notice emits a ::notice annotation.
func (r *Reporter) Notice(title, message string) {
	r.command("notice", title, message)
}

// Warning emits a ::warning annotation.
func (r *Reporter) Warning(title, message string) {
	r.command("warning", title, message)
}

func (r *Reporter) command(name, title, message string) {
	props := ""
	if title != "" {
		props = " title=" + escapeProperty(title)
	}
	fmt.Fprintf(r.w, "::%s%s::%s\n", name, props, escapeData(message))
}

// SetOutput records a step output. Multi-line values use the heredoc form
// with a random delimiter.
func (r *Reporter) SetOutput(name, value string) error {
	if r.outputPath == "" {
		return nil
	}

	var line string
	if strings.ContainsAny(value, "\r\n") {
		delim := "ghadelimiter_" + uuid.NewString()
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim)
	} else {
		line = fmt.Sprintf("%s=%s\n", name, value)
	}

	if err := appendFile(r.outputPath, line); err != nil {
		return fmt.Errorf("writing output %s: %w", name, err)
	}
	return nil
}

// AppendSummary appends markdown to the job summary.
func (r *Reporter) AppendSummary(markdown string) error {
	if r.summaryPath == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	if err := appendFile(r.summaryPath, markdown); err != nil {
		return fmt.Errorf("writing job summary: %w", err)
	}
	return nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propEscaper.Replace(s)
}
