package driver

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
)

// GitResolver serves modules from the tree of one pinned commit. Local
// repositories are opened in place, remote ones are cloned into memory on
// first use. Module names are "<source>/<path>" with path relative to the
// source's dir.
type GitResolver struct {
	source *GitSource

	mu     sync.Mutex
	tree   *object.Tree
	commit plumbing.Hash
	err    error
	opened bool
}

func NewGitResolver(src *GitSource) *GitResolver {
	return &GitResolver{source: src}
}

// Commit returns the resolved commit hash, opening the repository if needed.
func (g *GitResolver) Commit() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := g.openLocked(); err != nil {
		return "", err
	}
	return g.commit.String(), nil
}

func (g *GitResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	prefix := g.source.Name + "/"
	if !strings.HasPrefix(name, prefix) {
		return interpreter.ModuleSource{}, fmt.Errorf("%w: %s is not in git source %s", interpreter.ErrModuleNotFound, name, g.source.Name)
	}
	rel := strings.TrimPrefix(name, prefix)

	g.mu.Lock()
	defer g.mu.Unlock()
	tree, err := g.openLocked()
	if err != nil {
		return interpreter.ModuleSource{}, err
	}
	for _, candidate := range candidatePaths(rel) {
		if strings.HasPrefix(candidate, "../") || candidate == ".." {
			break
		}
		file := path.Join(g.source.Dir, candidate)
		f, err := tree.File(file)
		if errors.Is(err, object.ErrFileNotFound) {
			continue
		}
		if err != nil {
			return interpreter.ModuleSource{}, fmt.Errorf("git source %s: read %s: %w", g.source.Name, file, err)
		}
		contents, err := f.Contents()
		if err != nil {
			return interpreter.ModuleSource{}, fmt.Errorf("git source %s: read %s: %w", g.source.Name, file, err)
		}
		origin := fmt.Sprintf("%s@%s:%s", g.source.Repo, shortHash(g.commit), file)
		tracer().Debugf("module %s found at %s", name, origin)
		return sourceFromBytes(name, origin, file, []byte(contents))
	}
	return interpreter.ModuleSource{}, fmt.Errorf("%w: %s not found in git source %s", interpreter.ErrModuleNotFound, rel, g.source.Name)
}

// openLocked opens the repository once; a failure is remembered so that
// every later import reports the same error.
func (g *GitResolver) openLocked() (*object.Tree, error) {
	if g.opened {
		return g.tree, g.err
	}
	g.opened = true
	g.tree, g.err = g.open()
	return g.tree, g.err
}

func (g *GitResolver) open() (*object.Tree, error) {
	repo, err := openRepository(g.source.Repo)
	if err != nil {
		return nil, fmt.Errorf("git source %s: %w", g.source.Name, err)
	}
	var hash *plumbing.Hash
	var lastErr error
	for _, rev := range revisionCandidates(g.source) {
		hash, lastErr = repo.ResolveRevision(rev)
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("git source %s: resolve revision %s: %w", g.source.Name, revisionDescriptor(g.source), lastErr)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("git source %s: commit %s: %w", g.source.Name, hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("git source %s: tree of %s: %w", g.source.Name, hash, err)
	}
	g.commit = *hash
	tracer().Infof("git source %s pinned at %s (%s)", g.source.Name, shortHash(*hash), revisionDescriptor(g.source))
	return tree, nil
}

func openRepository(repo string) (*git.Repository, error) {
	if isLocalRepo(repo) {
		r, err := git.PlainOpen(repo)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", repo, err)
		}
		return r, nil
	}
	r, err := git.Clone(memory.NewStorage(), nil, &git.CloneOptions{URL: repo})
	if err != nil {
		return nil, fmt.Errorf("git clone %s: %w", repo, err)
	}
	return r, nil
}

// revisionCandidates lists the revisions tried in order. Branches of a
// cloned repository only exist as remote-tracking refs.
func revisionCandidates(src *GitSource) []plumbing.Revision {
	switch {
	case src.Rev != "":
		return []plumbing.Revision{plumbing.Revision(src.Rev)}
	case src.Tag != "":
		return []plumbing.Revision{plumbing.Revision("refs/tags/" + src.Tag)}
	case src.Branch != "":
		return []plumbing.Revision{
			plumbing.Revision("refs/heads/" + src.Branch),
			plumbing.Revision("refs/remotes/origin/" + src.Branch),
		}
	}
	return []plumbing.Revision{plumbing.Revision(plumbing.HEAD)}
}

func revisionDescriptor(src *GitSource) string {
	switch {
	case src.Rev != "":
		return src.Rev
	case src.Tag != "":
		return "tag " + src.Tag
	case src.Branch != "":
		return "branch " + src.Branch
	}
	return "HEAD"
}

func shortHash(h plumbing.Hash) string {
	s := h.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
