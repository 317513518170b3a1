package depgraph

// InstallOrder is the result of [Sort].
type InstallOrder struct {
	// Packages lists keys so that every dependency present in the list comes
	// before the packages that depend on it.
	Packages []string
	// Excluded lists keys left out because they sit on a cycle or have a
	// dependency chain leading into one, in the order they were found.
	Excluded []string
}

// Sort computes an installation order for g.
//
// Sort runs a three-color depth-first search over the keys of g in insertion
// order, appending each package after all of its dependencies (post-order).
// Dependency names that are not keys are skipped.
//
// Reaching a node that is still in progress means a cycle. The node is marked
// excluded and the failure propagates up the whole call chain: every package
// on the chain is excluded too and reset to unvisited, so it may be tried
// again from a later root. This is deliberately conservative. A package with
// one dependency chain into a cycle is excluded even if its other chains are
// clean, and so is the root that led there.
//
// Sort does not modify g and returns the same result for the same graph.
func Sort(g *Graph) InstallOrder {
	s := sorter{
		g:       g,
		color:   make(map[string]color, g.Len()),
		tainted: make(map[string]bool),
	}
	for _, k := range g.keys {
		if s.color[k] == unvisited {
			s.visit(k)
		}
	}

	order := InstallOrder{Packages: []string{}, Excluded: s.excluded}
	for _, n := range s.result {
		if !s.tainted[n] {
			order.Packages = append(order.Packages, n)
		}
	}
	return order
}

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

type sorter struct {
	g        *Graph
	color    map[string]color
	tainted  map[string]bool
	excluded []string
	result   []string
}

func (s *sorter) taint(n string) {
	if !s.tainted[n] {
		s.tainted[n] = true
		s.excluded = append(s.excluded, n)
	}
}

// visit reports whether node and everything below it is cycle free.
func (s *sorter) visit(node string) bool {
	switch s.color[node] {
	case inProgress:
		s.taint(node)
		return false
	case done:
		return true
	}

	s.color[node] = inProgress
	for _, dep := range s.g.deps[node] {
		if !s.g.Has(dep) {
			continue
		}
		if !s.visit(dep) {
			s.taint(node)
			s.color[node] = unvisited
			return false
		}
	}
	s.color[node] = done
	s.result = append(s.result, node)
	return true
}
