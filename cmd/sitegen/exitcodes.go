package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid sitegen.yml, missing site.yaml)
	ExitDataError   = 3 // Data error (malformed bibliography, check found issues)
)
