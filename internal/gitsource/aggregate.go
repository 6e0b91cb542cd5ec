// Package gitsource implements the content aggregator: it turns a
// Playbook's content sources into Bundles of raw, not-yet-classified files
// by cloning or opening each source's repository, selecting the refs whose
// branch/tag patterns match, and materializing every matched ref's tree.
package gitsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"github.com/dionysius/docweave/internal/content"
	"github.com/dionysius/docweave/internal/playbook"
	"github.com/dionysius/docweave/internal/version"
)

// fileEntry is one materialized file, path relative to the source's
// startPath, posix-separated.
type fileEntry struct {
	path     string
	contents []byte
}

// Aggregate groups content sources by URL so a shared repository is opened
// once, fans out across distinct URLs in parallel, and within each URL fans
// out across its sources' ref selection and materialization. It returns the
// merged, version-sorted Bundles ready for classification. stdout, when
// non-nil and an interactive terminal, receives per-URL clone/fetch
// progress; pass nil to disable progress reporting entirely.
func Aggregate(ctx context.Context, pb playbook.Playbook, stdout *os.File) ([]Bundle, error) {
	groups := groupSourcesByURL(pb.Content.Sources)

	workers := runtime.NumCPU()
	if workers > len(groups) && len(groups) > 0 {
		workers = len(groups)
	}
	if workers < 1 {
		workers = 1
	}
	mainPool := pond.NewPool(workers, pond.WithContext(ctx))
	defer mainPool.StopAndWait()
	group := mainPool.NewGroup()

	var mu sync.Mutex
	var bundles []Bundle

	for _, g := range groups {
		g := g
		group.SubmitErr(func() error {
			progress := newProgressWriter(g.url, pb.Runtime.Quiet, pb.Runtime.Silent, stdout)
			perURL, err := aggregateURL(ctx, pb, g.url, g.sources, progress)
			if err != nil {
				return fmt.Errorf("%s: %w", g.url, err)
			}
			mu.Lock()
			bundles = append(bundles, perURL...)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := mergeBundles(bundles)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Name != merged[j].Name {
			return merged[i].Name < merged[j].Name
		}
		return version.Compare(merged[i].Version, merged[j].Version) < 0
	})
	return merged, nil
}

func firstNonEmpty(a, b playbook.Patterns) playbook.Patterns {
	if len(a) > 0 {
		return a
	}
	return b
}

// sourceGroup is every configured Source that shares one clone URL.
type sourceGroup struct {
	url     string
	sources []playbook.Source
}

func groupSourcesByURL(sources []playbook.Source) []sourceGroup {
	var order []string
	byURL := make(map[string][]playbook.Source)
	for _, s := range sources {
		if _, ok := byURL[s.URL]; !ok {
			order = append(order, s.URL)
		}
		byURL[s.URL] = append(byURL[s.URL], s)
	}

	groups := make([]sourceGroup, 0, len(order))
	for _, u := range order {
		groups = append(groups, sourceGroup{url: u, sources: byURL[u]})
	}
	return groups
}

// aggregateURL opens url's repository once and fans its sources' ref
// selection and materialization out over an errgroup.
func aggregateURL(ctx context.Context, pb playbook.Playbook, url string, sources []playbook.Source, progress io.Writer) ([]Bundle, error) {
	opened, err := openSource(ctx, pb.Dir, url, pb.Runtime.CacheDir, pb.Runtime.Pull, progress)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	perSource := make([][]Bundle, len(sources))

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			branchPatterns := firstNonEmpty(src.Branches, pb.Content.Branches)
			tagPatterns := firstNonEmpty(src.Tags, pb.Content.Tags)
			bundles, err := aggregateSource(gctx, pb, opened, src, branchPatterns, tagPatterns)
			if err != nil {
				return fmt.Errorf("%s: %w", src.StartPath, err)
			}
			perSource[i] = bundles
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Bundle
	for _, bundles := range perSource {
		out = append(out, bundles...)
	}
	return out, nil
}

// aggregateSource selects one source's matching refs within its already
// opened repository and materializes each concurrently.
func aggregateSource(ctx context.Context, pb playbook.Playbook, opened openedRepo, src playbook.Source, branchPatterns, tagPatterns playbook.Patterns) ([]Bundle, error) {
	refs, err := selectRefs(opened.repo, branchPatterns, tagPatterns, opened.remoteTrackingPreferred)
	if err != nil {
		return nil, err
	}

	currentBranch, _ := currentBranchShorthand(opened.repo)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]Bundle, len(refs))
	found := make([]bool, len(refs))

	for i, r := range refs {
		i, r := i, r
		g.Go(func() error {
			useWorktree := !opened.remoteTrackingPreferred && !r.remote && r.shorthand == currentBranch
			entries, err := materializeRef(gctx, opened.repo, r, src.StartPath, useWorktree)
			if err != nil {
				return fmt.Errorf("%s: %w", r.shorthand, err)
			}

			origin := content.Origin{
				Type:           "git",
				URL:            src.URL,
				StartPath:      src.StartPath,
				Worktree:       useWorktree,
				EditURLPattern: editURLPattern(src.URL, r.refType, r.shorthand, src.StartPath),
			}
			if r.refType == "branch" {
				origin.Branch = r.shorthand
			} else {
				origin.Tag = r.shorthand
			}

			bundle, ok, err := buildBundleForRef(entries, pb.DescriptorFilename, origin)
			if err != nil {
				return fmt.Errorf("%s: %w", r.shorthand, err)
			}
			results[i], found[i] = bundle, ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Bundle
	for i, ok := range found {
		if ok {
			out = append(out, results[i])
		}
	}
	return out, nil
}

// buildBundleForRef separates the component descriptor from the rest of a
// materialized ref's files and builds its Bundle. A ref with no descriptor
// at its root is not a component version; found is false for it.
func buildBundleForRef(entries []fileEntry, descriptorFilename string, origin content.Origin) (bundle Bundle, found bool, err error) {
	var descBytes []byte
	var rawFiles []content.RawFile

	for _, e := range entries {
		if e.path == descriptorFilename {
			descBytes = e.contents
			continue
		}
		base := path.Base(e.path)
		if strings.HasPrefix(base, ".") || path.Ext(base) == "" {
			continue
		}
		rawFiles = append(rawFiles, content.RawFile{Path: e.path, Contents: e.contents, Origin: origin})
	}

	if descBytes == nil {
		return Bundle{}, false, nil
	}

	desc, err := parseDescriptor(descBytes)
	if err != nil {
		return Bundle{}, false, err
	}

	for i := range rawFiles {
		rawFiles[i].Component = desc.Name
		rawFiles[i].Version = string(desc.Version)
	}

	return Bundle{
		Name:      desc.Name,
		Version:   string(desc.Version),
		Title:     desc.Title,
		StartPage: desc.StartPage,
		Nav:       desc.Nav,
		Files:     rawFiles,
	}, true, nil
}

func materializeRef(ctx context.Context, repo *git.Repository, r matchedRef, startPath string, useWorktree bool) ([]fileEntry, error) {
	if useWorktree {
		return walkWorktree(repo, startPath)
	}
	return walkTree(repo, r.hash, startPath)
}

func walkWorktree(repo *git.Repository, startPath string) ([]fileEntry, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}

	var entries []fileEntry
	root := strings.Trim(startPath, "/")
	if err := walkFS(wt.Filesystem, root, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func walkFS(fs billy.Filesystem, dir, relPrefix string, out *[]fileEntry) error {
	infos, err := fs.ReadDir(dirOrDot(dir))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransientIO, err)
	}

	for _, info := range infos {
		name := info.Name()
		if name == ".git" {
			continue
		}
		full := path.Join(dir, name)
		rel := name
		if relPrefix != "" {
			rel = relPrefix + "/" + name
		}

		if info.IsDir() {
			if err := walkFS(fs, full, rel, out); err != nil {
				return err
			}
			continue
		}

		f, err := fs.Open(dirOrDot(full))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		contents, err := io.ReadAll(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		if closeErr != nil {
			return fmt.Errorf("%w: %v", ErrTransientIO, closeErr)
		}
		*out = append(*out, fileEntry{path: rel, contents: contents})
	}
	return nil
}

func dirOrDot(p string) string {
	if p == "" {
		return "."
	}
	return p
}

func walkTree(repo *git.Repository, hash plumbing.Hash, startPath string) ([]fileEntry, error) {
	commit, err := resolveCommit(repo, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
	}

	root := strings.Trim(startPath, "/")
	if root != "" {
		tree, err = tree.Tree(root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", root, ErrTransientIO)
		}
	}

	var entries []fileEntry
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		name, entry, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		if !entry.Mode.IsRegular() {
			continue
		}

		blob, err := repo.BlobObject(entry.Hash)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		r, err := blob.Reader()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		contents, err := io.ReadAll(r)
		closeErr := r.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransientIO, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransientIO, closeErr)
		}

		entries = append(entries, fileEntry{path: name, contents: contents})
	}
	return entries, nil
}

func resolveCommit(repo *git.Repository, hash plumbing.Hash) (*object.Commit, error) {
	if commit, err := repo.CommitObject(hash); err == nil {
		return commit, nil
	}
	tag, err := repo.TagObject(hash)
	if err != nil {
		return nil, err
	}
	return tag.Commit()
}
