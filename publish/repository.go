package publish

import (
	"errors"
	"os"
	"path"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
	timeutils "github.com/theMomax/openmeteogram/utils/time"
)

// openOrInit opens the repository at path. If there is none, it initializes
// one with branch as its default branch and the author as its user.
func openOrInit(c *Config) (*git.Repository, error) {
	repo, err := git.PlainOpen(c.RepositoryPath)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, err
	}

	if err := os.MkdirAll(c.RepositoryPath, 0o755); err != nil {
		return nil, err
	}
	repo, err = git.PlainInitWithOptions(c.RepositoryPath, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(c.Branch),
		},
	})
	if err != nil {
		return nil, err
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, err
	}
	cfg.User.Name = c.AuthorName
	cfg.User.Email = c.AuthorEmail
	if err := repo.SetConfig(cfg); err != nil {
		return nil, err
	}

	log.WithField("path", c.RepositoryPath).Info("initialized repository")
	return repo, nil
}

// checkout makes branch the current branch. An unborn HEAD is pointed at
// branch directly. A missing branch is created from HEAD. Switching to an
// existing branch updates the files that differ between the two commits,
// unless they have local changes. Untracked and ignored files are left
// alone.
func checkout(repo *git.Repository, branch string) error {
	ref := plumbing.NewBranchReferenceName(branch)

	current, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref))
	}
	if err != nil {
		return err
	}

	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return err
	}
	if head.Type() == plumbing.SymbolicReference && head.Target() == ref {
		return nil
	}

	target, err := repo.Reference(ref, true)
	create := errors.Is(err, plumbing.ErrReferenceNotFound)
	if err != nil && !create {
		return err
	}

	w, err := repo.Worktree()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"branch": branch,
		"create": create,
	}).Debug("checking out branch")

	if create {
		return w.Checkout(&git.CheckoutOptions{
			Branch: ref,
			Create: true,
			Keep:   true,
		})
	}

	if err := switchFiles(repo, w, current.Hash(), target.Hash()); err != nil {
		return err
	}
	if err := w.Checkout(&git.CheckoutOptions{Branch: ref, Keep: true}); err != nil {
		return err
	}
	return w.Reset(&git.ResetOptions{Commit: target.Hash(), Mode: git.MixedReset})
}

// switchFiles writes the files that differ between the commits from and to
// into the working tree. Paths with local changes keep them.
func switchFiles(repo *git.Repository, w *git.Worktree, from, to plumbing.Hash) error {
	status, err := w.Status()
	if err != nil {
		return err
	}
	local := func(name string) bool {
		s, ok := status[name]
		return ok && !(s.Staging == git.Unmodified && s.Worktree == git.Unmodified)
	}

	tree := func(h plumbing.Hash) (*object.Tree, error) {
		c, err := repo.CommitObject(h)
		if err != nil {
			return nil, err
		}
		return c.Tree()
	}
	old, err := tree(from)
	if err != nil {
		return err
	}
	next, err := tree(to)
	if err != nil {
		return err
	}
	changes, err := object.DiffTree(old, next)
	if err != nil {
		return err
	}

	for _, ch := range changes {
		if ch.To.Name == "" {
			if local(ch.From.Name) {
				continue
			}
			if err := w.Filesystem.Remove(ch.From.Name); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			continue
		}
		if local(ch.To.Name) {
			log.WithField("file", ch.To.Name).Debug("keeping local changes")
			continue
		}
		f, err := next.File(ch.To.Name)
		if err != nil {
			return err
		}
		if err := restoreFile(w, f); err != nil {
			return err
		}
	}
	return nil
}

func restoreFile(w *git.Worktree, f *object.File) error {
	contents, err := f.Contents()
	if err != nil {
		return err
	}
	if err := w.Filesystem.MkdirAll(path.Dir(f.Name), 0o755); err != nil {
		return err
	}
	if err := w.Filesystem.Remove(f.Name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if f.Mode == filemode.Symlink {
		return w.Filesystem.Symlink(contents, f.Name)
	}

	mode, err := f.Mode.ToOSFileMode()
	if err != nil {
		return err
	}
	out, err := w.Filesystem.OpenFile(f.Name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := out.Write([]byte(contents)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// commit stages every change including deletions and commits them. It
// returns the zero hash if the working tree is clean.
func commit(repo *git.Repository, c *Config) (plumbing.Hash, error) {
	w, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, err
	}

	status, err := w.Status()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if status.IsClean() {
		return plumbing.ZeroHash, nil
	}

	sig, err := signature(repo, c)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return w.Commit(c.CommitMessage, &git.CommitOptions{
		Author: sig,
	})
}

// signature uses the repository's user and falls back to the configured
// author.
func signature(repo *git.Repository, c *Config) (*object.Signature, error) {
	sig := &object.Signature{
		Name:  c.AuthorName,
		Email: c.AuthorEmail,
		When:  timeutils.Now(),
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, err
	}
	if cfg.User.Name != "" && cfg.User.Email != "" {
		sig.Name, sig.Email = cfg.User.Name, cfg.User.Email
	}
	return sig, nil
}
