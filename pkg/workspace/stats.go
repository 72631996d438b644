package workspace

// Stats summarizes the shape of a graph.
type Stats struct {
	Nodes     int
	Edges     int
	Loops     int
	Parallel  int // edges that repeat an earlier pair
	Isolated  int
	MaxDegree int
}

// Stats computes summary statistics for g.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: g.NodeCount(), Edges: g.EdgeCount()}

	type pair struct{ a, b NodeID }
	seen := make(map[pair]bool, len(g.edges))
	for _, e := range g.edges {
		if e.IsLoop() {
			s.Loops++
		}
		p := pair{min(e.A, e.B), max(e.A, e.B)}
		if seen[p] {
			s.Parallel++
		}
		seen[p] = true
	}

	for id := range g.files {
		d := g.Degree(NodeID(id))
		if d == 0 {
			s.Isolated++
		}
		s.MaxDegree = max(s.MaxDegree, d)
	}
	return s
}

// Isolated returns the nodes without any incident edge, in ID order.
func (g *Graph) Isolated() []NodeID {
	var out []NodeID
	for id := range g.files {
		if len(g.incident[id]) == 0 {
			out = append(out, NodeID(id))
		}
	}
	return out
}
