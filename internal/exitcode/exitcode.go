// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes returned by the todo binary.
const (
	// Success indicates successful completion, including "task not found".
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates the configuration could not be loaded or is invalid.
	ConfigError = 2

	// StoreError indicates the task store could not be opened, read or written.
	StoreError = 3
)
