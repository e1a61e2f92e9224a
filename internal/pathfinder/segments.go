package pathfinder

import (
	"fmt"
	"strings"

	"github.com/UnknownOlympus/courier/internal/graph"
)

// Segment is one leg of a path.
type Segment struct {
	From     string
	To       string
	Distance float64 // Distance in kilometers.
}

// Segments splits path into its legs with the edge weight of each.
// It fails if two consecutive locations are not connected in g.
func Segments(g *graph.Graph, path []string) ([]Segment, error) {
	if len(path) < 2 {
		return nil, nil
	}

	segments := make([]Segment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return nil, fmt.Errorf("no edge between %q and %q", path[i-1], path[i])
		}
		segments = append(segments, Segment{From: path[i-1], To: path[i], Distance: w})
	}

	return segments, nil
}

// PathWeight sums the edge weights along path, in path order.
func PathWeight(g *graph.Graph, path []string) (float64, error) {
	segments, err := Segments(g, path)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, s := range segments {
		total += s.Distance
	}

	return total, nil
}

// String joins the path with commas, e.g. "Chicago,London,Amsterdam".
func (r Result) String() string {
	return strings.Join(r.Path, ",")
}
