package gitsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// openedRepo is an opened or cloned repository ready for ref selection.
type openedRepo struct {
	repo *git.Repository

	// remoteTrackingPreferred is true for a bare repository, where branch
	// refs only ever exist as refs/remotes/origin/*; a non-bare working
	// copy keeps its own refs/heads/* up to date and is preferred instead.
	remoteTrackingPreferred bool
}

// openSource opens a local source path as-is (resolved against playbookDir
// when relative), or opens/clones a remote one into its scoped cache
// directory, per the url-classification and fetch-reuse rules.
func openSource(ctx context.Context, playbookDir, rawURL, cacheDir string, pull bool, progress io.Writer) (openedRepo, error) {
	if !isRemote(rawURL) {
		return openLocalSource(playbookDir, rawURL)
	}
	return openRemoteSource(ctx, rawURL, cacheDir, pull, progress)
}

// openLocalSource opens rawURL as a local repository path, resolving it
// against playbookDir first when it isn't already absolute.
func openLocalSource(playbookDir, rawURL string) (openedRepo, error) {
	path := rawURL
	if !filepath.IsAbs(path) {
		path = filepath.Join(playbookDir, path)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return openedRepo{}, fmt.Errorf("%s: %w", path, ErrLocalSourceMissing)
	}

	isBare := true
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		isBare = false
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return openedRepo{}, fmt.Errorf("%s: %w", path, ErrLocalSourceNotRepo)
	}
	return openedRepo{repo: repo, remoteTrackingPreferred: isBare}, nil
}

// openRemoteSource opens the cached bare mirror of a remote URL, re-cloning
// from scratch if the cache entry is missing or corrupt, and fetching with
// prune when pull is requested. progress, when non-nil, receives the
// clone/fetch's byte-counting progress stream.
func openRemoteSource(ctx context.Context, rawURL, cacheDir string, pull bool, progress io.Writer) (openedRepo, error) {
	dest := cachePath(cacheDir, rawURL)

	repo, err := git.PlainOpen(dest)
	if err != nil {
		if removeErr := os.RemoveAll(dest); removeErr != nil {
			return openedRepo{}, fmt.Errorf("%s: %w", dest, ErrTransientIO)
		}
		repo, err = git.PlainCloneContext(ctx, dest, true, &git.CloneOptions{
			URL:      rawURL,
			Tags:     git.AllTags,
			Progress: progress,
		})
		if err != nil {
			endProgress(progress, rawURL, err)
			return openedRepo{}, classifyGitError(err)
		}
		return openedRepo{repo: repo, remoteTrackingPreferred: true}, nil
	}

	if pull {
		err = repo.FetchContext(ctx, &git.FetchOptions{
			RemoteName: "origin",
			RefSpecs:   []config.RefSpec{"+refs/heads/*:refs/remotes/origin/*", "+refs/tags/*:refs/tags/*"},
			Tags:       git.AllTags,
			Prune:      true,
			Force:      true,
			Progress:   progress,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) && !errors.Is(err, transport.ErrEmptyRemoteRepository) {
			endProgress(progress, rawURL, err)
			return openedRepo{}, classifyGitError(err)
		}
	}

	return openedRepo{repo: repo, remoteTrackingPreferred: true}, nil
}
