package runtime

import (
	"context"
	"errors"

	"mocotch.dev/mocotch/internal/config"
	"mocotch.dev/mocotch/internal/output"
	"mocotch.dev/mocotch/internal/workspace"
)

// Context provides access to the workspace and output for commands
type Context struct {
	Config    *config.Config
	Splog     *output.Splog
	Workspace *workspace.Workspace
}

type contextKey struct{}

// NewContext creates a runtime context whose workspace is rooted at
// cfg.ProjectsDir and logs through splog
func NewContext(cfg *config.Config, splog *output.Splog) *Context {
	return &Context{
		Config:    cfg,
		Splog:     splog,
		Workspace: workspace.New(cfg.ProjectsDir, splog.Logger(), cfg.DefaultBranch, cfg.InitialBranch),
	}
}

// WithContext stores rc in ctx
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// GetContext returns the runtime context stored in ctx
func GetContext(ctx context.Context) (*Context, error) {
	if ctx == nil {
		return nil, errors.New("no command context")
	}
	rc, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || rc == nil {
		return nil, errors.New("runtime context not initialized")
	}
	return rc, nil
}
