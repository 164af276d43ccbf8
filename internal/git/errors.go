package git

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	mocerrors "mocotch.dev/mocotch/internal/errors"
)

// ErrRepositoryNotExists is returned when a path holds no repository
var ErrRepositoryNotExists = git.ErrRepositoryNotExists

// FailureKind classifies backend failures
type FailureKind int

const (
	// FailureNone means there was no error
	FailureNone FailureKind = iota
	// FailureOther is any failure not covered below
	FailureOther
	// FailureNetwork means the remote could not be reached
	FailureNetwork
	// FailureAuth means the remote rejected our credentials or required some
	FailureAuth
	// FailureDiverged means local and remote history are not fast-forwardable
	FailureDiverged
	// FailureDirty means uncommitted changes blocked the operation
	FailureDirty
	// FailureNotFound means a repository, remote or ref does not exist
	FailureNotFound
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNetwork:
		return "network"
	case FailureAuth:
		return "auth"
	case FailureDiverged:
		return "diverged"
	case FailureDirty:
		return "dirty"
	case FailureNotFound:
		return "not-found"
	default:
		return "other"
	}
}

// Classify maps a backend error to a FailureKind
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod):
		return FailureAuth
	case errors.Is(err, git.ErrNonFastForwardUpdate),
		errors.Is(err, git.ErrForceNeeded):
		return FailureDiverged
	case errors.Is(err, git.ErrUnstagedChanges),
		errors.Is(err, git.ErrWorktreeNotClean),
		errors.Is(err, mocerrors.ErrDirtyWorktree):
		return FailureDirty
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrEmptyRemoteRepository),
		errors.Is(err, git.ErrRepositoryNotExists),
		errors.Is(err, git.ErrRemoteNotFound),
		errors.Is(err, plumbing.ErrReferenceNotFound):
		return FailureNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return FailureNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return FailureNetwork
	}

	// Pushes rejected by the remote only carry the reason as text
	if strings.Contains(err.Error(), "non-fast-forward") {
		return FailureDiverged
	}

	return FailureOther
}
