package loader

import "sort"

// Graph records the #load relationships between source files: which
// files a file depends on, and the reverse. Edges are installed only
// through SetDependencies, which rejects any edge set that would close
// a cycle.
type Graph struct {
	deps       map[string]map[string]struct{}
	dependents map[string]map[string]struct{}
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		deps:       make(map[string]map[string]struct{}),
		dependents: make(map[string]map[string]struct{}),
	}
}

// SetDependencies replaces from's outgoing edges. When the new edges
// would create a cycle the graph is left untouched and the full cycle
// is returned in the error.
func (g *Graph) SetDependencies(from string, to []string) error {
	old := g.deps[from]
	next := make(map[string]struct{}, len(to))
	for _, t := range to {
		next[t] = struct{}{}
	}
	g.deps[from] = next

	if cycle := g.findCycle(from); cycle != nil {
		g.deps[from] = old
		return &CircularDependencyError{Cycle: cycle}
	}

	for t := range old {
		if _, kept := next[t]; !kept {
			delete(g.dependents[t], from)
		}
	}
	for t := range next {
		if g.dependents[t] == nil {
			g.dependents[t] = make(map[string]struct{})
		}
		g.dependents[t][from] = struct{}{}
	}
	return nil
}

// Remove drops a node and all its edges.
func (g *Graph) Remove(path string) {
	for t := range g.deps[path] {
		delete(g.dependents[t], path)
	}
	delete(g.deps, path)
	for f := range g.dependents[path] {
		delete(g.deps[f], path)
	}
	delete(g.dependents, path)
}

// Dependencies returns the transitive closure of path's dependencies,
// sorted, excluding path itself.
func (g *Graph) Dependencies(path string) []string {
	return g.closure(path, g.deps)
}

// Dependents returns every file that transitively depends on path,
// sorted, excluding path itself.
func (g *Graph) Dependents(path string) []string {
	return g.closure(path, g.dependents)
}

func (g *Graph) closure(start string, edges map[string]map[string]struct{}) []string {
	seen := map[string]bool{start: true}
	stack := []string{start}
	var out []string
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range edges[n] {
			if !seen[next] {
				seen[next] = true
				out = append(out, next)
				stack = append(stack, next)
			}
		}
	}
	sort.Strings(out)
	return out
}

// findCycle walks from start along dependency edges and returns the
// first cycle found as a path, or nil.
func (g *Graph) findCycle(start string) []string {
	var path []string
	onPath := make(map[string]bool)
	visited := make(map[string]bool)

	var walk func(n string) []string
	walk = func(n string) []string {
		path = append(path, n)
		onPath[n] = true
		// Deterministic order keeps the reported cycle stable.
		next := make([]string, 0, len(g.deps[n]))
		for d := range g.deps[n] {
			next = append(next, d)
		}
		sort.Strings(next)
		for _, d := range next {
			if onPath[d] {
				for i, p := range path {
					if p == d {
						return append(append([]string{}, path[i:]...), d)
					}
				}
			}
			if !visited[d] {
				if cycle := walk(d); cycle != nil {
					return cycle
				}
			}
		}
		onPath[n] = false
		visited[n] = true
		path = path[:len(path)-1]
		return nil
	}
	return walk(start)
}

// ReloadOrder returns the subgraph affected by the changed set (the
// changed files plus everything that transitively depends on them) in
// topological order, dependencies before dependents, so a dependent
// never reloads against a stale dependency.
func (g *Graph) ReloadOrder(changed []string) []string {
	affected := make(map[string]bool)
	for _, c := range changed {
		if !affected[c] {
			affected[c] = true
		}
		for _, d := range g.Dependents(c) {
			affected[d] = true
		}
	}

	var order []string
	done := make(map[string]bool)
	var visit func(n string)
	visit = func(n string) {
		if done[n] {
			return
		}
		done[n] = true
		deps := make([]string, 0, len(g.deps[n]))
		for d := range g.deps[n] {
			deps = append(deps, d)
		}
		sort.Strings(deps)
		for _, d := range deps {
			if affected[d] {
				visit(d)
			}
		}
		order = append(order, n)
	}

	nodes := make([]string, 0, len(affected))
	for n := range affected {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	for _, n := range nodes {
		visit(n)
	}
	return order
}
