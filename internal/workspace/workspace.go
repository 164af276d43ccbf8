// Package workspace manages the directory that holds every project and
// serializes access to each project's repository.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/iter"

	mocerrors "mocotch.dev/mocotch/internal/errors"
	"mocotch.dev/mocotch/internal/project"
	"mocotch.dev/mocotch/internal/utils"
)

// CreatedCommitMessage is the message of the commit recording a new project's
// initial content
const CreatedCommitMessage = "Initial commit: project created"

// ProjectInfo describes one project in the workspace
type ProjectInfo struct {
	Name   string
	Path   string
	Branch string
	// Remote is the origin URL, empty for a purely local project
	Remote   string
	Upstream string
}

// ProjectStatus is the change set of one project, or the error that
// prevented computing it
type ProjectStatus struct {
	Name    string
	Branch  string
	Changes project.ChangeSet
	Err     error
}

// Workspace is the projects root directory. Operations on the same project
// are serialized; different projects proceed independently.
type Workspace struct {
	root          string
	log           *slog.Logger
	defaultBranch string
	initialBranch string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a workspace rooted at root. Empty branch names fall back to the
// project package defaults.
func New(root string, logger *slog.Logger, defaultBranch, initialBranch string) *Workspace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if defaultBranch == "" {
		defaultBranch = project.DefaultBranch
	}
	if initialBranch == "" {
		initialBranch = project.DefaultInitialBranch
	}
	return &Workspace{
		root:          filepath.Clean(root),
		log:           logger,
		defaultBranch: defaultBranch,
		initialBranch: initialBranch,
		locks:         make(map[string]*sync.Mutex),
	}
}

// Root returns the projects directory
func (w *Workspace) Root() string {
	return w.root
}

// DefaultBranch returns the branch new projects track when none is given
func (w *Workspace) DefaultBranch() string {
	return w.defaultBranch
}

// ProjectPath validates name and returns the project directory
func (w *Workspace) ProjectPath(name string) (string, error) {
	if err := utils.ValidateProjectName(name); err != nil {
		return "", err
	}
	return filepath.Join(w.root, name), nil
}

// lock acquires the per-project mutex and returns its unlock function
func (w *Workspace) lock(name string) func() {
	w.mu.Lock()
	m, ok := w.locks[name]
	if !ok {
		m = &sync.Mutex{}
		w.locks[name] = m
	}
	w.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (w *Workspace) newHandle(name, path, branch string) *project.Handle {
	return project.New(path, branch,
		project.WithLogger(w.log.With("project", name)),
		project.WithInitialBranch(w.initialBranch))
}

func (w *Workspace) resolveBranch(branch string) (string, error) {
	if branch == "" {
		return w.defaultBranch, nil
	}
	if err := utils.ValidateBranchName(branch); err != nil {
		return "", err
	}
	return branch, nil
}

// Create initializes a new project tracking branch and commits its initial
// content. The project directory must not exist.
func (w *Workspace) Create(name, branch string) error {
	path, err := w.ProjectPath(name)
	if err != nil {
		return err
	}
	branch, err = w.resolveBranch(branch)
	if err != nil {
		return err
	}

	unlock := w.lock(name)
	defer unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", mocerrors.ErrProjectExists, name)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat project directory: %w", err)
	}

	h := w.newHandle(name, path, branch)
	if err := resultError("init", h, h.InitOrOpen()); err != nil {
		w.removeProject(name, path)
		return err
	}
	defer h.Close()

	return resultError("commit", h, h.CommitAll(CreatedCommitMessage))
}

// removeProject deletes a project directory left behind by a failed create
func (w *Workspace) removeProject(name, path string) {
	if err := os.RemoveAll(path); err != nil {
		w.log.Warn("failed to remove partial project", "project", name, "error", err)
	}
}

// Clone clones remoteURL into a new project tracking branch
func (w *Workspace) Clone(ctx context.Context, name, remoteURL, branch string) error {
	path, err := w.ProjectPath(name)
	if err != nil {
		return err
	}
	branch, err = w.resolveBranch(branch)
	if err != nil {
		return err
	}

	unlock := w.lock(name)
	defer unlock()

	h := w.newHandle(name, path, branch)
	switch r := h.Clone(ctx, remoteURL); r {
	case project.Success:
		h.Close()
		return nil
	case project.PreconditionFailure:
		return fmt.Errorf("%w: %s", mocerrors.ErrProjectExists, name)
	default:
		return resultError("clone", h, r)
	}
}

// Do runs fn with a bound handle for an existing project while holding the
// project's lock. The handle tracks whatever branch is checked out.
func (w *Workspace) Do(name string, fn func(*project.Handle) error) error {
	path, err := w.ProjectPath(name)
	if err != nil {
		return err
	}

	unlock := w.lock(name)
	defer unlock()

	h := w.newHandle(name, path, w.defaultBranch)
	switch r := h.Open(); r {
	case project.Success:
	case project.PreconditionFailure:
		return fmt.Errorf("%w: %s", mocerrors.ErrProjectNotFound, name)
	default:
		return resultError("open", h, r)
	}
	defer h.Close()

	return fn(h)
}

// List returns every project in the workspace sorted by name. Directories
// without a repository are skipped. A missing root is an empty workspace.
func (w *Workspace) List() ([]ProjectInfo, error) {
	names, err := w.projectDirs()
	if err != nil {
		return nil, err
	}

	projects := []ProjectInfo{}
	for _, name := range names {
		err := w.Do(name, func(h *project.Handle) error {
			info := ProjectInfo{
				Name:   name,
				Path:   h.Path(),
				Branch: h.CurrentBranch(),
			}
			info.Remote, _ = h.RemoteURL()
			info.Upstream, _ = h.Upstream()
			projects = append(projects, info)
			return nil
		})
		if errors.Is(err, mocerrors.ErrProjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// projectDirs returns the sorted names of subdirectories that are valid
// project names
func (w *Workspace) projectDirs() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || utils.ValidateProjectName(entry.Name()) != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Status returns the change set of one project
func (w *Workspace) Status(name string) (project.ChangeSet, error) {
	var changes project.ChangeSet
	err := w.Do(name, func(h *project.Handle) error {
		changes = h.Status()
		return nil
	})
	return changes, err
}

// StatusAll computes the status of every project in parallel, in name order
func (w *Workspace) StatusAll() ([]ProjectStatus, error) {
	projects, err := w.List()
	if err != nil {
		return nil, err
	}

	return iter.Map(projects, func(p *ProjectInfo) ProjectStatus {
		status := ProjectStatus{Name: p.Name, Branch: p.Branch}
		status.Changes, status.Err = w.Status(p.Name)
		return status
	}), nil
}

// CurrentBranch returns the branch checked out in a project
func (w *Workspace) CurrentBranch(name string) (string, error) {
	var branch string
	err := w.Do(name, func(h *project.Handle) error {
		branch = h.CurrentBranch()
		return nil
	})
	return branch, err
}

// Sync pulls the checked out branch from origin
func (w *Workspace) Sync(ctx context.Context, name string) error {
	return w.Do(name, func(h *project.Handle) error {
		if !h.HasRemote() {
			return mocerrors.NewBackendError("pull", h.Path(), h.Branch(), mocerrors.ErrNoRemote)
		}
		return resultError("pull", h, h.Pull(ctx))
	})
}

// Push pushes the checked out branch to origin. Projects without a remote
// succeed without doing anything.
func (w *Workspace) Push(ctx context.Context, name string) error {
	return w.Do(name, func(h *project.Handle) error {
		return resultError("push", h, h.Push(ctx))
	})
}

// CommitAndPush commits every change and, when push is set, pushes the
// result. A failed push leaves the commit in place.
func (w *Workspace) CommitAndPush(ctx context.Context, name, message string, push bool) error {
	return w.Do(name, func(h *project.Handle) error {
		if err := resultError("commit", h, h.CommitAll(message)); err != nil {
			return err
		}
		if !push {
			return nil
		}
		return resultError("push", h, h.Push(ctx))
	})
}

// Discard drops every uncommitted change in a project
func (w *Workspace) Discard(name string) error {
	return w.Do(name, func(h *project.Handle) error {
		return resultError("discard", h, h.DiscardChanges())
	})
}

// SwitchBranch checks out branch in a project, creating it when needed
func (w *Workspace) SwitchBranch(name, branch string) error {
	if err := utils.ValidateBranchName(branch); err != nil {
		return err
	}
	return w.Do(name, func(h *project.Handle) error {
		if h.Status().HasChanges() {
			return mocerrors.NewBackendError("switch", h.Path(), branch, mocerrors.ErrDirtyWorktree)
		}
		return resultError("switch", h, h.SwitchBranch(branch))
	})
}

// SetRemote configures origin for a project that has none
func (w *Workspace) SetRemote(name, remoteURL string) error {
	return w.Do(name, func(h *project.Handle) error {
		if h.HasRemote() {
			return mocerrors.NewBackendError("remote", h.Path(), h.Branch(), mocerrors.ErrPreconditionFailed)
		}
		return resultError("remote", h, h.SetRemote(remoteURL))
	})
}

// resultError converts a handle result into an error
func resultError(op string, h *project.Handle, r project.Result) error {
	switch r {
	case project.Success:
		return nil
	case project.PreconditionFailure:
		return mocerrors.NewBackendError(op, h.Path(), h.Branch(), mocerrors.ErrPreconditionFailed)
	default:
		return mocerrors.NewBackendError(op, h.Path(), h.Branch(), mocerrors.ErrBackendFailed)
	}
}
