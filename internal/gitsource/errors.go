package gitsource

import (
	"errors"
	"strings"
)

var (
	ErrLocalSourceMissing = errors.New("local source missing")
	ErrLocalSourceNotRepo = errors.New("local source is not a git repository")
	ErrAuthRequired       = errors.New("authentication required")
	ErrRepoNotFound       = errors.New("repository not found")
	ErrSSHAgentMissing    = errors.New("ssh agent not available")
	ErrBadDescriptor      = errors.New("bad component descriptor")
	ErrTransientIO        = errors.New("transient i/o error")
)

// classifyGitError maps a go-git/transport error's substrings onto one of
// the fatal remote-access sentinels, the way the teacher's debext verifier
// classifies signature errors by substring rather than type assertion.
func classifyGitError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "authentication required", "401", "invalid credentials"):
		return ErrAuthRequired
	case containsAny(msg, "repository not found", "not found", "404"):
		return ErrRepoNotFound
	case containsAny(msg, "ssh-agent", "ssh agent", "ssh_auth_sock"):
		return ErrSSHAgentMissing
	default:
		return ErrTransientIO
	}
}

func containsAny(msg string, substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
