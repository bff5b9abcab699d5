package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fsx", "content")
	l := New()

	first, err := l.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, l.ReadCount())

	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, l.ReadCount(), "cached load must not touch disk")

	l.Invalidate(path)
	_, err = l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, l.ReadCount(), "invalidated load must re-read")
}

func TestUnchangedHashKeepsCachedParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fsx", "same bytes")
	l := New()

	first, err := l.Load(path)
	require.NoError(t, err)

	l.Invalidate(path)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second, "same hash must keep the cached entry")
}

func TestChangedByteChangesHashAndForcesReparse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.fsx", "version 1")
	l := New()

	first, err := l.Load(path)
	require.NoError(t, err)

	writeFile(t, dir, "a.fsx", "version 2")
	l.Invalidate(path)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash, second.Hash)
	assert.Equal(t, "version 2", second.Content)
}

func TestLoadMissingFile(t *testing.T) {
	l := New()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.fsx"))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLoadDirectivesResolveRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	b := writeFile(t, filepath.Join(dir, "lib"), "b.fsx", "helper")
	a := writeFile(t, dir, "a.fsx", "#load \"lib/b.fsx\"\nbody\n")

	l := New()
	f, err := l.Load(a)
	require.NoError(t, err)
	require.Equal(t, []string{mustAbs(t, b)}, f.Dependencies)
}

func TestMalformedDirectiveIsParseError(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fsx", "ok line\n#load b.fsx\n")

	_, err := New().Load(a)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadTreeLoadsWholeTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.fsx", "leaf")
	writeFile(t, dir, "b.fsx", "#load \"c.fsx\"")
	a := writeFile(t, dir, "a.fsx", "#load \"b.fsx\"")

	l := New()
	files, err := l.LoadTree(a)
	require.NoError(t, err)
	require.Len(t, files, 3)

	deps := l.Dependencies(a)
	assert.Equal(t, []string{mustAbs(t, filepath.Join(dir, "b.fsx")), mustAbs(t, filepath.Join(dir, "c.fsx"))}, deps)
}

func TestCycleRejectedNamingBothPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fsx", "#load \"b.fsx\"")
	writeFile(t, dir, "b.fsx", "#load \"a.fsx\"")

	_, err := New().LoadTree(a)
	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Error(), "a.fsx")
	assert.Contains(t, cycleErr.Error(), "b.fsx")
}

func TestSelfIncludeRejected(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.fsx", "#load \"a.fsx\"")
	_, err := New().Load(a)
	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
}

func TestNeedsReloadSeesTransitiveInvalidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.fsx", "leaf")
	b := writeFile(t, dir, "b.fsx", "#load \"c.fsx\"")
	a := writeFile(t, dir, "a.fsx", "#load \"b.fsx\"")

	l := New()
	_, err := l.LoadTree(a)
	require.NoError(t, err)
	assert.False(t, l.NeedsReload(a))

	l.Invalidate(filepath.Join(dir, "c.fsx"))
	assert.True(t, l.NeedsReload(a), "a change two levels down must mark the root stale")
	assert.True(t, l.NeedsReload(b))
}

func TestReloadOrderDependenciesFirst(t *testing.T) {
	dir := t.TempDir()
	c := writeFile(t, dir, "c.fsx", "leaf")
	b := writeFile(t, dir, "b.fsx", "#load \"c.fsx\"")
	a := writeFile(t, dir, "a.fsx", "#load \"b.fsx\"")

	l := New()
	_, err := l.LoadTree(a)
	require.NoError(t, err)

	order := l.ReloadOrder([]string{mustAbs(t, c)})
	require.Equal(t, []string{mustAbs(t, c), mustAbs(t, b), mustAbs(t, a)}, order)

	// A change to the root alone reloads only the root.
	assert.Equal(t, []string{mustAbs(t, a)}, l.ReloadOrder([]string{mustAbs(t, a)}))
}

func TestReadFileInjection(t *testing.T) {
	reads := 0
	l := New()
	l.readFile = func(path string) ([]byte, error) {
		reads++
		return []byte("synthetic"), nil
	}
	_, err := l.Load("/virtual/x.fsx")
	require.NoError(t, err)
	assert.Equal(t, 1, reads)
	assert.Equal(t, reads, l.ReadCount())
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}
