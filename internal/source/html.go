package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/courier/internal/models"
	"golang.org/x/net/html"
)

// HTMLSource reads locations and connections from two HTML documents with tables.
//
// Coordinate rows are <td>name</td><td>latitude</td><td>longitude</td>,
// connection rows are <td>from</td><td>to</td>. Extra cells are ignored, header
// rows made of <th> cells never match, and rows that cannot be parsed are skipped.
type HTMLSource struct {
	coordinatesPath string
	connectionsPath string
	log             *slog.Logger
}

// NewHTMLSource creates a source reading the two given files.
func NewHTMLSource(coordinatesPath, connectionsPath string, log *slog.Logger) *HTMLSource {
	return &HTMLSource{coordinatesPath: coordinatesPath, connectionsPath: connectionsPath, log: log}
}

// Load parses both files.
func (s *HTMLSource) Load(ctx context.Context) (map[string]models.Coordinates, []models.Connection, error) {
	coordsFile, err := os.Open(s.coordinatesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open coordinates file: %w", err)
	}
	defer coordsFile.Close()

	coords, skipped, err := ParseCoordinates(coordsFile)
	if err != nil {
		return nil, nil, err
	}
	s.log.InfoContext(ctx, "Loaded location coordinates", "count", len(coords), "skipped_rows", skipped)

	connsFile, err := os.Open(s.connectionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open connections file: %w", err)
	}
	defer connsFile.Close()

	conns, skipped, err := ParseConnections(connsFile)
	if err != nil {
		return nil, nil, err
	}
	s.log.InfoContext(ctx, "Loaded direct connections", "count", len(conns), "skipped_rows", skipped)

	return coords, conns, nil
}

// ParseCoordinates extracts name, latitude and longitude from every table row
// with at least three cells. It returns the number of rows it skipped.
// A name listed twice keeps its last coordinates.
func ParseCoordinates(r io.Reader) (map[string]models.Coordinates, int, error) {
	rows, err := tableRows(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse coordinates document: %w", err)
	}

	const minCells = 3
	coords := make(map[string]models.Coordinates, len(rows))
	skipped := 0
	for _, cells := range rows {
		if len(cells) < minCells || cells[0] == "" {
			skipped++
			continue
		}

		lat, errLat := strconv.ParseFloat(cells[1], 64)
		lon, errLon := strconv.ParseFloat(cells[2], 64)
		if errLat != nil || errLon != nil {
			skipped++
			continue
		}
		coords[cells[0]] = models.Coordinates{Latitude: lat, Longitude: lon}
	}

	return coords, skipped, nil
}

// ParseConnections extracts from/to pairs from every table row with at least
// two non-empty cells, in document order. It returns the number of rows it skipped.
func ParseConnections(r io.Reader) ([]models.Connection, int, error) {
	rows, err := tableRows(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse connections document: %w", err)
	}

	const minCells = 2
	conns := make([]models.Connection, 0, len(rows))
	skipped := 0
	for _, cells := range rows {
		if len(cells) < minCells || cells[0] == "" || cells[1] == "" {
			skipped++
			continue
		}
		conns = append(conns, models.Connection{From: cells[0], To: cells[1]})
	}

	return conns, skipped, nil
}

// tableRows returns the trimmed <td> texts of every <tr> that has any <td>.
func tableRows(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "td" {
					cells = append(cells, strings.TrimSpace(textContent(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return rows, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	return sb.String()
}
