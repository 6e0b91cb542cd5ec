package gitsource

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// matchedRef is one git reference selected for materialization.
type matchedRef struct {
	shorthand string
	refType   string // "branch" | "tag"
	hash      plumbing.Hash
	remote    bool // true for a refs/remotes/origin/* branch
}

// selectRefs enumerates repo's branches and tags and keeps the ones
// matching branchPatterns/tagPatterns, applying the HEAD/"." current-branch
// special case and the bare-vs-working-tree local/remote-tracking
// de-duplication rule.
func selectRefs(repo *git.Repository, branchPatterns, tagPatterns []string, preferRemoteTracking bool) ([]matchedRef, error) {
	currentBranch, _ := currentBranchShorthand(repo)
	wantCurrentBranch := len(branchPatterns) == 1 && (branchPatterns[0] == "HEAD" || branchPatterns[0] == ".")

	local := map[string]matchedRef{}
	remote := map[string]matchedRef{}
	var tags []matchedRef

	iter, err := repo.Storer.IterReferences()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(r *plumbing.Reference) error {
		if r.Type() != plumbing.HashReference {
			return nil
		}
		name := r.Name()
		switch {
		case name.IsBranch():
			short := name.Short()
			local[short] = matchedRef{shorthand: short, refType: "branch", hash: r.Hash()}
		case name.IsRemote():
			short := strings.TrimPrefix(name.Short(), "origin/")
			if short == "HEAD" {
				return nil
			}
			remote[short] = matchedRef{shorthand: short, refType: "branch", hash: r.Hash(), remote: true}
		case name.IsTag():
			tags = append(tags, matchedRef{shorthand: name.Short(), refType: "tag", hash: r.Hash()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}

	branchNames := make(map[string]struct{}, len(local)+len(remote))
	for n := range local {
		branchNames[n] = struct{}{}
	}
	for n := range remote {
		branchNames[n] = struct{}{}
	}

	var out []matchedRef
	for name := range branchNames {
		if wantCurrentBranch {
			if name != currentBranch {
				continue
			}
		} else if !matchesGlobPatterns(branchPatterns, name) {
			continue
		}

		if preferRemoteTracking {
			if r, ok := remote[name]; ok {
				out = append(out, r)
				continue
			}
			out = append(out, local[name])
			continue
		}
		if r, ok := local[name]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, remote[name])
	}

	for _, t := range tags {
		if matchesGlobPatterns(tagPatterns, t.shorthand) {
			out = append(out, t)
		}
	}

	return out, nil
}

// currentBranchShorthand returns the shorthand name HEAD currently points
// at, or "" if HEAD is detached or unresolvable.
func currentBranchShorthand(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}
