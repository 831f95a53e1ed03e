package environment

import "fmt"

// Model errors. Construction errors surface to the caller unchanged; point
// lookups never fail, they return an absent result instead.
var (
	// ErrEnvironmentNotFound is returned by registries (see internal/project)
	// when no environment with the requested name exists. It is declared here
	// because it is part of the environment contract consumers depend on; no
	// operation in this package returns it.
	ErrEnvironmentNotFound = fmt.Errorf("environment not found")

	// ErrMalformedOverride is returned when a raw plugin override spec is
	// missing its name or carries a field of the wrong shape.
	ErrMalformedOverride = fmt.Errorf("malformed plugin override")

	// ErrInvalidConfig is returned when the raw environment configuration
	// mapping itself has the wrong shape.
	ErrInvalidConfig = fmt.Errorf("invalid environment config")
)
