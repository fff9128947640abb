package logging

// Field name constants for structured log output. Constants keep field
// names consistent across commands.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFileKey    = "file_key"
	FieldWorkingDir = "working_dir"

	// Edit fields.
	FieldEditOp    = "edit_op"
	FieldStartLine = "line_start"
	FieldEndLine   = "line_end"
	FieldSteps     = "steps"

	// Run fields.
	FieldAutoFix = "auto_fix"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldFormat  = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesChecked    = "files_checked"
	FieldFilesErrored    = "files_errored"
	FieldFindingsTotal   = "findings_total"
	FieldErrorsTotal     = "errors_total"
	FieldWarningsTotal   = "warnings_total"

	// Version fields.
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGoVersion = "go_version"
	FieldPlatform  = "platform"
)
