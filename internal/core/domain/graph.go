package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// Direction selects which way a dependency query walks the graph.
type Direction string

const (
	// DirectionUpstream follows outgoing edges: what the anchor depends on.
	DirectionUpstream Direction = "upstream"
	// DirectionDownstream follows edges in reverse: what depends on the
	// anchor. This is the change-impact query.
	DirectionDownstream Direction = "downstream"
	// DirectionBoth is the union of the two closures minus the anchor.
	DirectionBoth Direction = "both"
)

// ParseDirection validates a direction selector string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUpstream, DirectionDownstream, DirectionBoth:
		return Direction(s), nil
	default:
		return "", zerr.With(zerr.New("invalid direction, expected 'upstream', 'downstream' or 'both'"), "direction", s)
	}
}

// GraphStats summarizes a built dependency graph.
type GraphStats struct {
	NodeCount   int `json:"node_count"`
	EdgeCount   int `json:"edge_count"`
	OrphanCount int `json:"orphan_count"`
}

// Graph is the reference graph over a normalized spec. Nodes are schema names
// and endpoint keys; edges point from a dependent node to the schema it
// references.
type Graph struct {
	nodes    map[string]struct{}
	forward  map[string][]string // node -> schemas it references
	reverse  map[string][]string // schema -> nodes referencing it
	edgeSize int
}

// BuildGraph constructs the dependency graph for a spec. Schemas contribute
// schema -> schema edges for every entry in their refs; endpoints contribute
// endpoint -> schema edges for every entry in their schema_refs.
func BuildGraph(spec *UnifiedSpec) *Graph {
	g := &Graph{
		nodes:   make(map[string]struct{}, len(spec.Schemas)+len(spec.Endpoints)),
		forward: make(map[string][]string),
		reverse: make(map[string][]string),
	}

	for name, schema := range spec.Schemas {
		g.nodes[name] = struct{}{}
		for _, ref := range schema.Refs {
			if ref == name {
				// Self references are legal in documents but carry no
				// impact information.
				continue
			}
			g.addEdge(name, ref)
		}
	}

	for key, endpoint := range spec.Endpoints {
		g.nodes[key] = struct{}{}
		for _, ref := range endpoint.SchemaRefs {
			g.addEdge(key, ref)
		}
	}

	return g
}

func (g *Graph) addEdge(from, to string) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	g.forward[from] = append(g.forward[from], to)
	g.reverse[to] = append(g.reverse[to], from)
	g.edgeSize++
}

// Contains reports whether the graph has a node with the given id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Query returns the sorted set of node ids reachable from the anchor in the
// given direction, excluding the anchor itself. Traversal tracks visited
// nodes, so circular schema references terminate.
func (g *Graph) Query(anchor string, direction Direction) ([]string, error) {
	if !g.Contains(anchor) {
		return nil, WithDetail(ErrUnknownAnchor, "anchor", anchor)
	}

	result := make(map[string]struct{})
	switch direction {
	case DirectionUpstream:
		g.closure(anchor, g.forward, result)
	case DirectionDownstream:
		g.closure(anchor, g.reverse, result)
	case DirectionBoth:
		g.closure(anchor, g.forward, result)
		g.closure(anchor, g.reverse, result)
	}
	delete(result, anchor)

	ids := make([]string, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// closure walks edges breadth-first from the anchor, adding every reached
// node to out.
func (g *Graph) closure(anchor string, edges map[string][]string, out map[string]struct{}) {
	queue := append([]string(nil), edges[anchor]...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if _, seen := out[node]; seen {
			continue
		}
		out[node] = struct{}{}
		queue = append(queue, edges[node]...)
	}
}

// Stats reports node, edge and orphan counts. An orphan has no incoming and
// no outgoing edges.
func (g *Graph) Stats() GraphStats {
	orphans := 0
	for id := range g.nodes {
		if len(g.forward[id]) == 0 && len(g.reverse[id]) == 0 {
			orphans++
		}
	}
	return GraphStats{
		NodeCount:   len(g.nodes),
		EdgeCount:   g.edgeSize,
		OrphanCount: orphans,
	}
}
