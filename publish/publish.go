package publish

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"
	"github.com/theMomax/openmeteogram/config"
)

func init() {
	config.OnInitialize(func() {
		log = config.NewLogger()
	})
}

var log = logrus.New()

// Result describes a completed run.
type Result struct {
	Branch string
	// Commit is the snapshot's hash. It is zero if nothing changed.
	Commit plumbing.Hash
	// Ignored lists the patterns added to .gitignore.
	Ignored []string
	// Pushed is false if the remote branch was already up to date.
	Pushed bool
}

// Publisher takes snapshots of a repository's working tree and pushes them.
// A Publisher must not run concurrently with another one on the same
// repository.
type Publisher struct {
	cfg Config
	url string

	// afterFetch is called between fetching and pushing.
	afterFetch func()
}

// New validates cfg and returns a Publisher for it.
func New(cfg Config) (*Publisher, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	url, err := cfg.URL()
	if err != nil {
		return nil, err
	}
	config.Secret(cfg.Token)
	return &Publisher{cfg: cfg, url: url}, nil
}

// Run commits all changes of the working tree, if there are any, and pushes
// the branch to the remote.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	r, err := p.run(ctx)
	return r, p.cfg.redactError(err)
}

func (p *Publisher) run(ctx context.Context) (*Result, error) {
	c := &p.cfg
	l := log.WithFields(logrus.Fields{
		"repository": c.RepositoryPath,
		"branch":     c.Branch,
	})

	repo, err := openOrInit(c)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	if err := checkout(repo, c.Branch); err != nil {
		return nil, fmt.Errorf("checking out %s: %w", c.Branch, err)
	}

	res := &Result{Branch: c.Branch}
	res.Ignored, err = EnsureLines(filepath.Join(c.RepositoryPath, ".gitignore"), c.Ignore)
	if err != nil {
		return nil, fmt.Errorf("updating .gitignore: %w", err)
	}
	if len(res.Ignored) > 0 {
		l.WithField("patterns", res.Ignored).Debug("extended .gitignore")
	}

	res.Commit, err = commit(repo, c)
	if err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}
	if res.Commit.IsZero() {
		l.Info("working tree clean, nothing to commit")
	} else {
		l.WithField("commit", res.Commit.String()).Info("committed snapshot")
	}

	if err := setRemote(repo, p.url); err != nil {
		return nil, fmt.Errorf("configuring remote: %w", err)
	}

	tip, known, err := fetch(ctx, repo, c.Branch)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}
	if ok, err := upstream(repo, c.Branch); err != nil {
		return nil, err
	} else if !ok {
		l.Debug("branch has no upstream yet")
	}

	if p.afterFetch != nil {
		p.afterFetch()
	}

	if c.Overwrite {
		l.Warn("overwriting remote branch")
	}
	res.Pushed, err = push(ctx, repo, c.Branch, c.Overwrite, lease{tip: tip, known: known})
	if err != nil {
		if !c.Overwrite {
			l.WithError(p.cfg.redactError(err)).Warn("push failed, the remote branch may have moved since the fetch; retry or enable overwrite")
		}
		return nil, fmt.Errorf("pushing: %w", err)
	}
	if err := track(repo, c.Branch); err != nil {
		return nil, fmt.Errorf("setting upstream: %w", err)
	}

	l.WithField("up_to_date", !res.Pushed).Info("push succeeded")
	return res, nil
}
