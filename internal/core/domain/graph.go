package domain

import "sort"

// ReferenceGraph is the directed graph of resolved file links: nodes are
// corpus files, edges point from a file to the files it links to. Built
// fresh each run from the resolved cross-references.
type ReferenceGraph struct {
	nodes map[string]bool
	edges map[string]map[string]bool // from -> set of to
}

// NewReferenceGraph creates a graph over the given file paths.
func NewReferenceGraph(paths []string) *ReferenceGraph {
	g := &ReferenceGraph{
		nodes: make(map[string]bool, len(paths)),
		edges: make(map[string]map[string]bool),
	}
	for _, p := range paths {
		g.nodes[p] = true
	}
	return g
}

// AddEdge records a resolved link from one file to another. Unknown
// endpoints are ignored.
func (g *ReferenceGraph) AddEdge(from, to string) {
	if !g.nodes[from] || !g.nodes[to] {
		return
	}
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
}

// Nodes returns all file paths in sorted order.
func (g *ReferenceGraph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Edges returns the outgoing links of a file in sorted order.
func (g *ReferenceGraph) Edges(from string) []string {
	targets := make([]string, 0, len(g.edges[from]))
	for to := range g.edges[from] {
		targets = append(targets, to)
	}
	sort.Strings(targets)
	return targets
}

// Orphans returns files with no incoming and no outgoing links, in
// sorted order. A single-file corpus has no orphans by definition.
func (g *ReferenceGraph) Orphans() []string {
	if len(g.nodes) <= 1 {
		return nil
	}

	incoming := make(map[string]int, len(g.nodes))
	for _, targets := range g.edges {
		for to := range targets {
			incoming[to]++
		}
	}

	var orphans []string
	for n := range g.nodes {
		if incoming[n] == 0 && len(g.edges[n]) == 0 {
			orphans = append(orphans, n)
		}
	}
	sort.Strings(orphans)
	return orphans
}
