// Package publish commits the forecast repository's working tree and pushes
// it to its remote.
package publish

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Error constants
var (
	ErrMissingToken  = errors.New("missing access token")
	ErrInvalidConfig = errors.New("invalid publish config")
)

// Config describes the repository to publish and where to publish it to.
type Config struct {
	RepositoryPath string `validate:"required"`
	Branch         string `validate:"required"`

	// Account, Host and Repository determine the remote URL
	// https://<Account>:<Token>@<Host>/<Account>/<Repository>.git
	Account    string `validate:"required_without=RemoteURL"`
	Repository string `validate:"required_without=RemoteURL"`
	Host       string `validate:"required_without=RemoteURL"`
	Token      string
	// RemoteURL replaces the URL built from the fields above. It is meant for
	// mirrors and tests.
	RemoteURL string

	// Overwrite pushes unconditionally instead of checking that the remote
	// branch is still at the commit seen by the preceding fetch.
	Overwrite bool

	AuthorName    string `validate:"required"`
	AuthorEmail   string `validate:"required"`
	CommitMessage string `validate:"required"`

	// Ignore lists patterns that .gitignore must contain.
	Ignore []string
}

// URL returns the remote's URL. It fails with ErrMissingToken if it has to
// be built and no token is configured.
func (c *Config) URL() (string, error) {
	if c.RemoteURL != "" {
		return c.RemoteURL, nil
	}
	if c.Token == "" {
		return "", ErrMissingToken
	}
	u := url.URL{
		Scheme: "https",
		User:   url.UserPassword(c.Account, c.Token),
		Host:   c.Host,
		Path:   fmt.Sprintf("/%s/%s.git", c.Account, c.Repository),
	}
	return u.String(), nil
}

const redacted = "***"

// redact removes the token from s.
func (c *Config) redact(s string) string {
	if c.Token == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.UserPassword("", c.Token).String()[1:], redacted)
	return strings.ReplaceAll(s, c.Token, redacted)
}

type redactedError struct {
	err error
	msg string
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

// redactError wraps err so that its message doesn't disclose the token.
func (c *Config) redactError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if r := c.redact(msg); r != msg {
		return &redactedError{err: err, msg: r}
	}
	return err
}
