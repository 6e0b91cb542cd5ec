package gitsource

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo builds a tiny in-memory repository with one commit on its
// default branch, an annotated tag, and a second branch ref, for exercising
// ref selection without touching disk or the network.
func newTestRepo(t *testing.T) *git.Repository {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	f, err := fs.Create("antora.yml")
	require.NoError(t, err)
	_, err = f.Write([]byte("name: docs\nversion: 1.0\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = wt.Add("antora.yml")
	require.NoError(t, err)

	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(0, 0)}
	_, err = wt.Commit("initial", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)

	_, err = repo.CreateTag("v1.0", head.Hash(), &git.CreateTagOptions{Tagger: sig, Message: "v1.0"})
	require.NoError(t, err)

	branchRef := plumbing.NewHashReference(plumbing.NewBranchReferenceName("release-2.0"), head.Hash())
	require.NoError(t, repo.Storer.SetReference(branchRef))

	return repo
}

func TestSelectRefsMatchesBranchAndTagPatterns(t *testing.T) {
	repo := newTestRepo(t)

	refs, err := selectRefs(repo, []string{"master", "release-*"}, []string{"v*"}, false)
	require.NoError(t, err)

	var names []string
	for _, r := range refs {
		names = append(names, r.shorthand)
	}
	assert.ElementsMatch(t, []string{"master", "release-2.0", "v1.0"}, names)
}

func TestSelectRefsHeadPatternResolvesCurrentBranchOnly(t *testing.T) {
	repo := newTestRepo(t)

	refs, err := selectRefs(repo, []string{"HEAD"}, nil, false)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "master", refs[0].shorthand)
}

func TestSelectRefsTagPatternsMatchOrdinaryGlob(t *testing.T) {
	repo := newTestRepo(t)

	refs, err := selectRefs(repo, nil, []string{"v1.0"}, false)
	require.NoError(t, err)

	var tags int
	for _, r := range refs {
		if r.refType == "tag" {
			tags++
		}
	}
	assert.Equal(t, 1, tags)
}

// TestSelectRefsHEADAndDotTagPatternsAreNotSpecialCased asserts the HEAD/"."
// current-branch shortcut applies only to branchPatterns: as a tag
// pattern, "HEAD" or "." is matched as an ordinary (and, here, non-matching)
// glob against tag shorthands, never resolved to the current branch.
func TestSelectRefsHEADAndDotTagPatternsAreNotSpecialCased(t *testing.T) {
	for _, pattern := range []string{"HEAD", "."} {
		t.Run(pattern, func(t *testing.T) {
			repo := newTestRepo(t)

			refs, err := selectRefs(repo, nil, []string{pattern}, false)
			require.NoError(t, err)

			for _, r := range refs {
				assert.NotEqual(t, "tag", r.refType, "tag pattern %q must not match any tag by current-branch special-casing", pattern)
			}
		})
	}
}

// TestSelectRefsNilTagPatternsMatchAllTags documents matchesGlobPatterns'
// real semantics (an empty pattern list matches everything) so a reader
// doesn't mistake "no tag patterns configured" for "no tags selected".
func TestSelectRefsNilTagPatternsMatchAllTags(t *testing.T) {
	repo := newTestRepo(t)

	refs, err := selectRefs(repo, nil, nil, false)
	require.NoError(t, err)

	var tags int
	for _, r := range refs {
		if r.refType == "tag" {
			tags++
		}
	}
	assert.Equal(t, 1, tags)
}
