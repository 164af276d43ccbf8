package project

// Result is the outcome of a handle operation
type Result int

const (
	// Success means the operation completed, possibly as a no-op
	Success Result = iota
	// BackendFailure means the git backend reported an error
	BackendFailure
	// PreconditionFailure means the operation was refused before touching the
	// repository (unbound handle, dirty tree, existing directory, no remote)
	PreconditionFailure
)

// OK reports whether r is Success
func (r Result) OK() bool {
	return r == Success
}

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case BackendFailure:
		return "backend failure"
	case PreconditionFailure:
		return "precondition failure"
	default:
		return "unknown"
	}
}
