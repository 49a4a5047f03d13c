package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// lease is the remote tip a push expects to replace.
type lease struct {
	tip plumbing.Hash
	// known is false if the remote had no such branch.
	known bool
}

// push sends branch to the remote. With overwrite, the remote branch is
// replaced unconditionally. Otherwise the push is rejected unless the remote
// branch is still at l's tip. It returns false if the remote was up to date.
func push(ctx context.Context, repo *git.Repository, branch string, overwrite bool, l lease) (bool, error) {
	ref := plumbing.NewBranchReferenceName(branch)
	spec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))

	opts := &git.PushOptions{
		RemoteName: Remote,
		RefSpecs:   []config.RefSpec{spec},
	}
	switch {
	case overwrite:
		opts.RefSpecs = []config.RefSpec{"+" + spec}
		opts.Force = true
	case l.known:
		opts.ForceWithLease = &git.ForceWithLease{
			RefName: ref,
			Hash:    l.tip,
		}
	}

	err := repo.PushContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
