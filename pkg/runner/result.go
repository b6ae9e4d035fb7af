package runner

import "github.com/yaklabco/marklint/pkg/lint"

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// WarningsTotal is the total number of warnings across all files.
	WarningsTotal int

	// WarningsFixable is the number of warnings that have auto-fixes.
	WarningsFixable int

	// WarningsBySeverity maps severity levels to counts.
	WarningsBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one warning.
	FilesWithIssues int

	// FilesModified is the number of files that were modified by fixes.
	FilesModified int

	// WarningsFixed is the total number of issues fixed across all files.
	WarningsFixed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any warnings with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.WarningsBySeverity["error"] > 0
}

// HasIssues reports whether any warnings were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.WarningsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		WarningsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesModified++
	}

	// Track total edits applied (issues fixed).
	r.Stats.WarningsFixed += outcome.Result.TotalEditsApplied

	if outcome.Result.FileResult != nil {
		warnCount := len(outcome.Result.Warnings)
		r.Stats.WarningsTotal += warnCount
		r.Stats.WarningsFixable += outcome.Result.FixableCount()

		if warnCount > 0 {
			r.Stats.FilesWithIssues++
		}

		for _, warn := range outcome.Result.Warnings {
			severity := string(warn.Severity)
			if severity == "" {
				severity = "warning"
			}
			r.Stats.WarningsBySeverity[severity]++
		}
	}
}
