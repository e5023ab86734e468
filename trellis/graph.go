package trellis

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
)

// WeightScale converts the solver's float64 edge weights into the int64
// weights github.com/katalvlaran/lvlath's graph and Dijkstra
// implementations operate on. Weights are multiplied by WeightScale and
// rounded to the nearest integer before insertion; this is a fixed-point
// precision tradeoff, not a change to the shortest-path algorithm itself.
const WeightScale = 1e6

// virtualVertexID is the dense integer ID of the virtual source vertex.
const virtualVertexID = 0

// trellisGraph wraps a lvlath core.Graph with dense-integer vertex
// bookkeeping: vertex IDs are contiguous, layer-ordered integers,
// stringified only where lvlath's string-keyed API demands it.
type trellisGraph struct {
	g        *core.Graph
	vertices map[int]VertexProperties
	nextID   int
}

func newTrellisGraph() *trellisGraph {
	tg := &trellisGraph{
		g:        core.NewGraph(core.WithDirected(true), core.WithWeighted()),
		vertices: make(map[int]VertexProperties),
	}
	return tg
}

func vertexKey(id int) string {
	return strconv.Itoa(id)
}

func vertexIDFromKey(key string) (int, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: non-integer vertex key %q", ErrInternalInconsistency, key)
	}
	return id, nil
}

// addVertex adds a new vertex carrying props and returns its dense ID.
func (tg *trellisGraph) addVertex(props VertexProperties) (int, error) {
	id := tg.nextID
	if err := tg.g.AddVertex(vertexKey(id)); err != nil {
		return 0, fmt.Errorf("%w: adding vertex %d: %s", ErrInternalInconsistency, id, err)
	}
	tg.vertices[id] = props
	tg.nextID++
	return id, nil
}

// addEdge inserts a directed edge u->v with the given float weight. It is
// an error to add the same ordered pair twice.
func (tg *trellisGraph) addEdge(u, v int, weight float64) error {
	if tg.g.HasEdge(vertexKey(u), vertexKey(v)) {
		return fmt.Errorf("%w: edge (%d, %d) already exists", ErrDuplicateEdge, u, v)
	}
	scaled := int64(weight*WeightScale + 0.5)
	if _, err := tg.g.AddEdge(vertexKey(u), vertexKey(v), scaled); err != nil {
		return fmt.Errorf("%w: adding edge (%d, %d): %s", ErrInternalInconsistency, u, v, err)
	}
	return nil
}

// numVertices, numEdges report the graph's current size, for buildstats.Stats.
func (tg *trellisGraph) numVertices() int { return tg.g.VertexCount() }
func (tg *trellisGraph) numEdges() int    { return tg.g.EdgeCount() }

// shortestPaths runs Dijkstra from the virtual source and returns, for
// every vertex ID reached, its scaled distance and immediate predecessor
// vertex ID (or ok=false for vertices with no predecessor, i.e. the source
// itself or unreached vertices).
func (tg *trellisGraph) shortestPaths() (dist map[int]int64, pred map[int]int, err error) {
	rawDist, rawPred, derr := dijkstra.Dijkstra(
		tg.g,
		dijkstra.Source(vertexKey(virtualVertexID)),
		dijkstra.WithReturnPath(),
	)
	if derr != nil {
		return nil, nil, fmt.Errorf("%w: dijkstra: %s", ErrInternalInconsistency, derr)
	}

	dist = make(map[int]int64, len(rawDist))
	for k, d := range rawDist {
		id, convErr := vertexIDFromKey(k)
		if convErr != nil {
			return nil, nil, convErr
		}
		dist[id] = d
	}

	pred = make(map[int]int, len(rawPred))
	for k, p := range rawPred {
		if p == "" {
			continue
		}
		id, convErr := vertexIDFromKey(k)
		if convErr != nil {
			return nil, nil, convErr
		}
		pid, convErr := vertexIDFromKey(p)
		if convErr != nil {
			return nil, nil, convErr
		}
		pred[id] = pid
	}
	return dist, pred, nil
}
