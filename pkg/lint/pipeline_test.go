package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/fsutil"
	"github.com/yaklabco/marklint/pkg/lint"
)

// growRule keeps finding something to fix on every pass: each "x" is
// rewritten to "xx". Used to verify the pass bound.
type growRule struct {
	lint.BaseRule
}

func newGrowRule() *growRule {
	return &growRule{
		BaseRule: lint.NewBaseRule("T004", "grows", "", nil, lint.Fixable),
	}
}

func (r *growRule) Check(doc *document.Document) []lint.Warning {
	idx := strings.Index(doc.Content, "x")
	if idx < 0 {
		return nil
	}
	w := lint.WarningAt(doc, idx, idx+1, "x found")
	w.Fix = &fix.TextEdit{StartOffset: idx, EndOffset: idx + 1, NewText: "xx"}
	return []lint.Warning{w}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixEngine() *lint.Engine {
	return engineWith(map[string]func() lint.Rule{
		"T001": func() lint.Rule { return newWarnRule() },
	})
}

func TestPipeline_ProcessFile_LintOnly(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "bad line\n")
	pipeline := lint.NewPipeline(fixEngine())

	result, err := pipeline.ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if !result.HasIssues() {
		t.Error("expected issues")
	}
	if result.Modified || result.Written {
		t.Error("lint-only run modified the file")
	}
	if got, _ := os.ReadFile(path); string(got) != "bad line\n" {
		t.Errorf("file content changed: %q", got)
	}
}

func TestPipeline_ProcessFile_FixMode(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "bad line\n")
	pipeline := lint.NewPipeline(fixEngine())

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := pipeline.ProcessFile(context.Background(), path, cfg, opts)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if !result.Written {
		t.Fatal("file not written")
	}
	if result.FixPasses != 1 {
		t.Errorf("expected 1 fix pass, got %d", result.FixPasses)
	}
	if got, _ := os.ReadFile(path); string(got) != "good line\n" {
		t.Errorf("fix not applied: %q", got)
	}
}

func TestPipeline_ProcessFile_MultiPassBound(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "x\n")
	engine := engineWith(map[string]func() lint.Rule{
		"T004": func() lint.Rule { return newGrowRule() },
	})
	pipeline := lint.NewPipeline(engine)

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.MaxFixPasses = 3

	result, err := pipeline.ProcessFile(context.Background(), path, cfg, opts)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	// A rule that reintroduces its own finding must still terminate at
	// the pass bound.
	if result.FixPasses != 3 {
		t.Errorf("expected 3 passes, got %d", result.FixPasses)
	}
}

func TestPipeline_ProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "bad line\n")
	pipeline := lint.NewPipeline(fixEngine())

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.DryRun = true

	result, err := pipeline.ProcessFile(context.Background(), path, cfg, opts)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if result.Written {
		t.Error("dry run wrote the file")
	}
	if result.Diff == nil {
		t.Error("dry run produced no diff")
	}
	if got, _ := os.ReadFile(path); string(got) != "bad line\n" {
		t.Errorf("dry run changed content: %q", got)
	}
}

func TestPipeline_ProcessFile_WithBackup(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "bad line\n")
	pipeline := lint.NewPipeline(fixEngine())

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := pipeline.ProcessFile(context.Background(), path, cfg, opts)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	if !result.BackupCreated {
		t.Error("backup not created")
	}
	if backup, err := os.ReadFile(path + fsutil.BackupSuffix); err != nil || string(backup) != "bad line\n" {
		t.Errorf("backup content wrong: %q, err=%v", backup, err)
	}
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(fixEngine())

	_, err := pipeline.ProcessFile(context.Background(), "/nonexistent/file.md", config.NewConfig(), lint.DefaultPipelineOptions())
	if !errors.Is(err, lint.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(fixEngine())

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := pipeline.ProcessContent(context.Background(), "mem.md", []byte("bad\n"), cfg, opts)
	if err != nil {
		t.Fatalf("ProcessContent: %v", err)
	}

	if string(result.ModifiedContent) != "good\n" {
		t.Errorf("expected fixed content, got %q", result.ModifiedContent)
	}
	if result.Written {
		t.Error("in-memory processing wrote a file")
	}
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result lint.PipelineResult
		want   string
	}{
		{"skipped", lint.PipelineResult{Skipped: true, SkipReason: "reason"}, "skipped: reason"},
		{"written", lint.PipelineResult{Written: true}, "fixed"},
		{"written with backup", lint.PipelineResult{Written: true, BackupCreated: true}, "fixed (backup created)"},
		{"pending", lint.PipelineResult{Modified: true}, "changes pending"},
		{"clean", lint.PipelineResult{}, "ok"},
		{
			"issues",
			lint.PipelineResult{FileResult: &lint.FileResult{Warnings: []lint.Warning{{Message: "issue"}}}},
			"issues found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	opts := lint.PipelineOptionsFromConfig(cfg)
	if !opts.Fix || !opts.DryRun {
		t.Errorf("flags not carried over: %+v", opts)
	}
}

func TestIsPipelineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"file not found", lint.ErrFileNotFound, true},
		{"permission", lint.ErrPermissionDenied, true},
		{"lint failure", lint.ErrLintFailure, true},
		{"write failure", lint.ErrWriteFailure, true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.IsPipelineError(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
