package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity is the author and committer recorded on commits
type Identity struct {
	Name  string
	Email string
}

// Signature returns a commit signature for the identity stamped with when
func (i Identity) Signature(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  i.Name,
		Email: i.Email,
		When:  when,
	}
}

// SetIdentity writes user.name and user.email into the repository's local config
func (r *Repository) SetIdentity(id Identity) error {
	cfg, err := r.Config()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg.User.Name = id.Name
	cfg.User.Email = id.Email

	if err := r.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

