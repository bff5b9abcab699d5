// Package loader reads and caches dashboard source files, tracks the
// #load dependency graph between them, and decides what must be
// re-read when files change. Content identity is a xxhash of the file
// bytes: an unchanged hash short-circuits both re-reading (when the
// cache is fresh) and re-parsing (when only the timestamp moved).
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// LoadedFile is one cached source file.
type LoadedFile struct {
	Path    string // absolute
	Content string
	Hash    uint64
	// Dependencies are the direct #load targets, absolute.
	Dependencies []string
}

// Loader owns the file cache and the dependency graph. Single-owner,
// like everything in the reload path.
type Loader struct {
	graph *Graph
	cache map[string]*LoadedFile
	dirty map[string]bool

	// readFile is injectable so tests can count disk reads and feed
	// synthetic trees.
	readFile func(path string) ([]byte, error)
	reads    int
}

// New returns an empty loader reading from the filesystem.
func New() *Loader {
	return &Loader{
		graph:    NewGraph(),
		cache:    make(map[string]*LoadedFile),
		dirty:    make(map[string]bool),
		readFile: os.ReadFile,
	}
}

// Load returns the file at path, from cache when it is fresh. An
// invalidated entry is re-read; if its hash is unchanged the cached
// parse is kept. New or changed content has its #load directives
// parsed and its graph edges replaced, which is where cycles surface.
func (l *Loader) Load(path string) (*LoadedFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if f, ok := l.cache[abs]; ok && !l.dirty[abs] {
		return f, nil
	}

	raw, err := l.readFile(abs)
	l.reads++
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: abs}
		}
		return nil, &IOError{Path: abs, Err: err}
	}

	hash := xxhash.Sum64(raw)
	if f, ok := l.cache[abs]; ok && f.Hash == hash {
		delete(l.dirty, abs)
		return f, nil
	}

	deps, err := parseLoadDirectives(abs, string(raw))
	if err != nil {
		return nil, err
	}
	if err := l.graph.SetDependencies(abs, deps); err != nil {
		return nil, err
	}

	f := &LoadedFile{Path: abs, Content: string(raw), Hash: hash, Dependencies: deps}
	l.cache[abs] = f
	delete(l.dirty, abs)
	return f, nil
}

// LoadTree loads path and its transitive dependencies, dependencies
// first, returning every loaded file keyed by absolute path. The walk
// itself cannot loop: a cycle fails SetDependencies before the edge
// back is followed.
func (l *Loader) LoadTree(path string) (map[string]*LoadedFile, error) {
	files := make(map[string]*LoadedFile)
	var walk func(p string) error
	walk = func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if _, ok := files[abs]; ok {
			return nil
		}
		f, err := l.Load(abs)
		if err != nil {
			return err
		}
		files[abs] = f
		for _, dep := range f.Dependencies {
			if err := walk(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(path); err != nil {
		return nil, err
	}
	return files, nil
}

// Invalidate marks a path stale so the next Load re-reads it.
func (l *Loader) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		if _, ok := l.cache[abs]; ok {
			l.dirty[abs] = true
		}
	}
}

// Forget drops a path from the cache and the graph entirely.
func (l *Loader) Forget(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		delete(l.cache, abs)
		delete(l.dirty, abs)
		l.graph.Remove(abs)
	}
}

// NeedsReload reports whether path or any of its transitive
// dependencies has been invalidated since its last Load.
func (l *Loader) NeedsReload(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if l.dirty[abs] {
		return true
	}
	for _, dep := range l.graph.Dependencies(abs) {
		if l.dirty[dep] {
			return true
		}
	}
	return false
}

// Dependencies returns the transitive dependency set of path.
func (l *Loader) Dependencies(path string) []string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	return l.graph.Dependencies(abs)
}

// ReloadOrder returns the files affected by the changed set in
// dependency-first order.
func (l *Loader) ReloadOrder(changed []string) []string {
	return l.graph.ReloadOrder(changed)
}

// ReadCount reports how many disk reads the loader has issued.
func (l *Loader) ReadCount() int {
	return l.reads
}

// parseLoadDirectives extracts `#load "relative/path"` lines. The
// directive doubles as a comment in the definition format, so plain
// comment lines and content are skipped, not rejected.
func parseLoadDirectives(path, content string) ([]string, error) {
	dir := filepath.Dir(path)
	var deps []string
	seen := make(map[string]bool)
	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#load") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "#load"))
		if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' || rest == `"` {
			return nil, &ParseError{
				Path:    path,
				Line:    i + 1,
				Message: `malformed #load directive, want #load "path"`,
			}
		}
		rel := rest[1 : len(rest)-1]
		if rel == "" {
			return nil, &ParseError{Path: path, Line: i + 1, Message: "#load path is empty"}
		}
		target := rel
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, rel)
		}
		target = filepath.Clean(target)
		if !seen[target] {
			seen[target] = true
			deps = append(deps, target)
		}
	}
	return deps, nil
}
