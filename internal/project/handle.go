package project

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	mocerrors "mocotch.dev/mocotch/internal/errors"
	"mocotch.dev/mocotch/internal/git"
)

const (
	// AnonymousName is the author name of every commit this package creates
	AnonymousName = "anonymous"
	// AnonymousEmail is the author email of every commit this package creates
	AnonymousEmail = "anonymous@localhost"

	// PlaceholderFile is committed into brand-new repositories so they always
	// have at least one branch
	PlaceholderFile = ".gitkeep"
	// InitialCommitMessage is the message of the placeholder commit
	InitialCommitMessage = "Initial commit"

	// DefaultBranch is the tracked branch when none is given
	DefaultBranch = "develop"
	// DefaultInitialBranch is the branch HEAD points at in a new repository
	DefaultInitialBranch = "main"
)

// anonymous is the fixed identity used for all commits
var anonymous = git.Identity{Name: AnonymousName, Email: AnonymousEmail}

// Handle is bound to exactly one project directory and owns the only
// connection to the repository inside it. A Handle is not safe for concurrent
// use; callers serialize access per project.
type Handle struct {
	path          string
	branch        string
	initialBranch string
	repo          *git.Repository
	log           *slog.Logger
}

// Option configures a Handle
type Option func(*Handle)

// WithLogger sets the logger diagnostics are written to
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handle) {
		if logger != nil {
			h.log = logger
		}
	}
}

// WithInitialBranch sets the branch a brand-new repository starts on
func WithInitialBranch(name string) Option {
	return func(h *Handle) {
		if name != "" {
			h.initialBranch = name
		}
	}
}

// New creates an unbound handle for the project at path tracking branch
func New(path, branch string, opts ...Option) *Handle {
	if branch == "" {
		branch = DefaultBranch
	}
	h := &Handle{
		path:          filepath.Clean(path),
		branch:        branch,
		initialBranch: DefaultInitialBranch,
		log:           slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("path", h.path)
	return h
}

// Path returns the project directory
func (h *Handle) Path() string {
	return h.path
}

// Branch returns the tracked branch name
func (h *Handle) Branch() string {
	return h.branch
}

// Bound reports whether the handle is bound to a repository
func (h *Handle) Bound() bool {
	return h.repo != nil
}

// Close releases the repository. The handle becomes unbound.
func (h *Handle) Close() {
	h.repo = nil
}

// InitOrOpen binds to the repository at the project path, creating the
// directory and a new repository with one placeholder commit when none exists,
// then checks out the tracked branch.
func (h *Handle) InitOrOpen() Result {
	log := h.log.With("op", "init", "branch", h.branch)

	repo, err := git.OpenRepository(h.path)
	switch {
	case err == nil:
		log.Info("using existing repository")
	case errors.Is(err, git.ErrRepositoryNotExists):
		log.Info("initializing new repository")
		repo, err = git.InitRepository(h.path, h.initialBranch)
		if err != nil {
			log.Error("repository initialization failed", "error", err)
			return BackendFailure
		}
		if err := repo.SetIdentity(anonymous); err != nil {
			log.Error("failed to configure anonymous identity", "error", err)
			return BackendFailure
		}
	default:
		log.Error("failed to open repository", "error", err)
		return BackendFailure
	}

	if err := h.ensureInitialCommit(repo, log); err != nil {
		log.Error("failed to create initial commit", "error", err)
		return BackendFailure
	}

	h.repo = repo
	if err := h.selectBranch(); err != nil {
		h.repo = nil
		return BackendFailure
	}
	return Success
}

// Open binds to an existing repository without changing the checkout. The
// branch currently checked out becomes the tracked branch.
func (h *Handle) Open() Result {
	log := h.log.With("op", "open")

	repo, err := git.OpenRepository(h.path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			log.Error("no repository in project directory")
			return PreconditionFailure
		}
		log.Error("failed to open repository", "error", err)
		return BackendFailure
	}

	h.repo = repo
	if current, err := repo.GetCurrentBranch(); err == nil {
		h.branch = current
	}
	log.Debug("repository opened", "branch", h.branch)
	return Success
}

// Clone clones remoteURL into the project path, which must not exist yet,
// and checks out the tracked branch.
func (h *Handle) Clone(ctx context.Context, remoteURL string) Result {
	log := h.log.With("op", "clone", "branch", h.branch, "url", remoteURL)

	if _, err := os.Stat(h.path); err == nil {
		log.Error("project directory already exists")
		return PreconditionFailure
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to stat project directory", "error", err)
		return BackendFailure
	}

	log.Info("cloning repository")
	repo, err := git.CloneRepository(ctx, h.path, remoteURL)
	if err != nil {
		log.Error("clone failed", "failure", git.Classify(err).String(), "error", err)
		h.removeClone(log)
		return BackendFailure
	}

	if err := repo.SetIdentity(anonymous); err != nil {
		log.Error("failed to configure anonymous identity", "error", err)
		h.removeClone(log)
		return BackendFailure
	}

	h.repo = repo
	if err := h.selectBranch(); err != nil {
		h.repo = nil
		h.removeClone(log)
		return BackendFailure
	}
	return Success
}

// removeClone deletes a directory created by a failed clone
func (h *Handle) removeClone(log *slog.Logger) {
	if err := os.RemoveAll(h.path); err != nil {
		log.Warn("failed to remove partial clone", "error", err)
	}
}

// ensureInitialCommit commits the placeholder file into a repository that has
// no branches yet
func (h *Handle) ensureInitialCommit(repo *git.Repository, log *slog.Logger) error {
	hasBranches, err := repo.HasBranches()
	if err != nil {
		return err
	}
	if hasBranches {
		return nil
	}

	placeholder := filepath.Join(h.path, PlaceholderFile)
	f, err := os.OpenFile(placeholder, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := repo.StageFile(PlaceholderFile); err != nil {
		return err
	}
	hash, err := repo.Commit(git.CommitOptions{
		Message: InitialCommitMessage,
		Author:  anonymous,
	})
	if err != nil {
		return err
	}

	log.Info("created initial commit", "commit", git.ShortHash(hash))
	return nil
}

// CurrentBranch returns the branch physically checked out, or the tracked
// branch name when the handle is unbound or HEAD is not on a branch
func (h *Handle) CurrentBranch() string {
	if h.repo != nil {
		if current, err := h.repo.GetCurrentBranch(); err == nil {
			return current
		}
	}
	return h.branch
}

// HeadCommit returns the short hash of HEAD
func (h *Handle) HeadCommit() (string, bool) {
	if h.repo == nil {
		return "", false
	}
	hash, err := h.repo.HeadShortHash()
	if err != nil {
		return "", false
	}
	return hash, true
}

// CommitCount returns the number of commits reachable from HEAD
func (h *Handle) CommitCount() int {
	if h.repo == nil {
		return 0
	}
	n, err := h.repo.CommitCount()
	if err != nil {
		h.log.Error("failed to count commits", "error", err)
		return 0
	}
	return n
}

// HasRemote reports whether the origin remote is configured
func (h *Handle) HasRemote() bool {
	if h.repo == nil {
		return false
	}
	ok, err := h.repo.HasRemote(git.DefaultRemote)
	if err != nil {
		h.log.Error("failed to look up remote", "error", err)
		return false
	}
	return ok
}

// RemoteURL returns the URL of origin
func (h *Handle) RemoteURL() (string, bool) {
	if h.repo == nil || !h.HasRemote() {
		return "", false
	}
	url, err := h.repo.GetRemoteURL(git.DefaultRemote)
	if err != nil {
		h.log.Error("failed to read remote URL", "error", err)
		return "", false
	}
	return url, true
}

// Upstream returns the remote branch the tracked branch follows, such as
// origin/develop. A branch that was never pushed or pulled has none.
func (h *Handle) Upstream() (string, bool) {
	if h.repo == nil {
		return "", false
	}
	remote, ok := h.repo.Upstream(h.branch)
	if !ok {
		return "", false
	}
	return remote + "/" + h.branch, true
}

// SetRemote configures origin for a project that has none
func (h *Handle) SetRemote(url string) Result {
	log := h.log.With("op", "remote", "url", url)
	if h.repo == nil {
		log.Error("repository handle is not bound")
		return PreconditionFailure
	}
	if h.HasRemote() {
		log.Error("remote already configured", "remote", git.DefaultRemote)
		return PreconditionFailure
	}
	if err := h.repo.AddRemote(git.DefaultRemote, url); err != nil {
		log.Error("failed to add remote", "error", err)
		return BackendFailure
	}
	log.Info("remote configured", "remote", git.DefaultRemote)
	return Success
}

// mustBeBound panics when an operation that requires a bound handle is called
// on an unbound one
func (h *Handle) mustBeBound(op string) {
	if h.repo == nil {
		panic(mocerrors.NewBackendError(op, h.path, h.branch, mocerrors.ErrNotBound))
	}
}
