package cli

// Exit codes for the clog CLI. Stable, so CI pipelines can branch on them.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitProblemsFound indicates the changelog has rule violations.
	ExitProblemsFound = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 2

	// ExitConfigurationError indicates invalid or missing configuration.
	ExitConfigurationError = 3

	// ExitRuntimeError indicates an unexpected failure.
	ExitRuntimeError = 4
)
