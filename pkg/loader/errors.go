package loader

import (
	"fmt"
	"strings"
)

// NotFoundError reports a Load of a path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("loader: file not found: %s", e.Path)
}

// ParseError reports a malformed source file with its position. Line
// and Col are 1-based; zero means unknown.
type ParseError struct {
	Path    string
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("loader: %s:%d:%d: %s", e.Path, e.Line, e.Col, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("loader: %s:%d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("loader: %s: %s", e.Path, e.Message)
	}
}

// CircularDependencyError names a #load cycle in full. Cycles are
// always fatal; the graph is never silently truncated.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("loader: circular dependency: %s", strings.Join(e.Cycle, " -> "))
}

// IOError wraps a filesystem failure other than absence.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("loader: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
