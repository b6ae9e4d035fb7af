package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/runner"
)

// GitHubReporter formats warnings as GitHub Actions workflow commands
// (::warning file=...) so they surface as inline annotations in pull
// requests.
type GitHubReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewGitHubReporter creates a new GitHub annotations reporter.
func NewGitHubReporter(opts Options) *GitHubReporter {
	return &GitHubReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *GitHubReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var issues int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "::error file=%s::%s\n",
				escapeAnnotationProperty(relativePath(file.Path)),
				escapeAnnotationMessage(file.Error.Error()))
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for i := range file.Result.Warnings {
			r.writeAnnotation(&file.Result.Warnings[i])
			issues++
		}
	}

	return issues, nil
}

// writeAnnotation emits a single workflow command for a warning.
func (r *GitHubReporter) writeAnnotation(warn *lint.Warning) {
	command := "warning"
	switch warn.Severity {
	case config.SeverityError:
		command = "error"
	case config.SeverityInfo:
		command = "notice"
	}

	title := config.FormatRuleID(r.opts.RuleFormat, warn.RuleID, warn.RuleName)

	fmt.Fprintf(r.bw, "::%s file=%s,line=%d,endLine=%d,col=%d,endColumn=%d,title=%s::%s\n",
		command,
		escapeAnnotationProperty(relativePath(warn.FilePath)),
		warn.StartLine,
		warn.EndLine,
		warn.StartColumn,
		warn.EndColumn,
		escapeAnnotationProperty(title),
		escapeAnnotationMessage(warn.Message))
}

// escapeAnnotationMessage escapes data for the message portion of a
// workflow command.
func escapeAnnotationMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeAnnotationProperty escapes data for a property value, which has
// two extra reserved characters beyond the message escapes.
func escapeAnnotationProperty(s string) string {
	s = escapeAnnotationMessage(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
