package publish

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote is the name of the remote published to.
const Remote = git.DefaultRemoteName

// setRemote creates the remote or replaces its URL.
func setRemote(repo *git.Repository, url string) error {
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: Remote,
		URLs: []string{url},
	})
	if !errors.Is(err, git.ErrRemoteExists) {
		return err
	}

	cfg, err := repo.Config()
	if err != nil {
		return err
	}
	rc := cfg.Remotes[Remote]
	rc.URLs = []string{url}
	if err := rc.Validate(); err != nil {
		return err
	}
	return repo.SetConfig(cfg)
}

// fetch updates the remote-tracking references, pruning stale ones, and
// returns the remote's tip of branch. ok is false if the remote has no such
// branch.
func fetch(ctx context.Context, repo *git.Repository, branch string) (tip plumbing.Hash, ok bool, err error) {
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: Remote,
		Prune:      true,
	})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		log.Debug("remote repository is empty")
	default:
		return plumbing.ZeroHash, false, err
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(Remote, branch), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	return ref.Hash(), true, nil
}

// upstream reports whether branch tracks a remote branch.
func upstream(repo *git.Repository, branch string) (bool, error) {
	b, err := repo.Branch(branch)
	if errors.Is(err, git.ErrBranchNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return b.Remote != "" && b.Merge != "", nil
}

// track makes branch track the remote's branch of the same name.
func track(repo *git.Repository, branch string) error {
	cfg, err := repo.Config()
	if err != nil {
		return err
	}
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: Remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	return repo.SetConfig(cfg)
}
