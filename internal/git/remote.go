package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// HasRemote reports whether a remote with the given name is configured
func (r *Repository) HasRemote(name string) (bool, error) {
	_, err := r.Remote(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, git.ErrRemoteNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up remote %s: %w", name, err)
}

// GetRemoteURL returns the first URL of the named remote
func (r *Repository) GetRemoteURL(name string) (string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to look up remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

// AddRemote configures a new remote
func (r *Repository) AddRemote(name, url string) error {
	_, err := r.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}
