// README: Graph description loading from JSON, YAML and OSM XML sources.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"gopkg.in/yaml.v3"
)

// LoadDescriptionFile reads a graph description; the format follows the file extension.
func LoadDescriptionFile(path string) (Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return Description{}, fmt.Errorf("could not open graph file: %w", err)
	}
	defer f.Close()

	return DecodeDescription(f, strings.TrimPrefix(filepath.Ext(path), "."))
}

// DecodeDescription decodes a description in the given format ("json", "yaml" or "yml").
func DecodeDescription(r io.Reader, format string) (Description, error) {
	var desc Description
	switch strings.ToLower(format) {
	case "json", "":
		if err := json.NewDecoder(r).Decode(&desc); err != nil {
			return Description{}, fmt.Errorf("%w: parse json: %v", ErrGraphLoad, err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&desc); err != nil {
			return Description{}, fmt.Errorf("%w: parse yaml: %v", ErrGraphLoad, err)
		}
	default:
		return Description{}, fmt.Errorf("%w: unsupported format %q", ErrGraphLoad, format)
	}
	return desc, nil
}

// DescriptionFromOSM converts OSM XML into a description. Nodes referenced by
// highway ways become graph nodes, consecutive way nodes become edges.
func DescriptionFromOSM(ctx context.Context, r io.Reader) (Description, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	positions := make(map[osm.NodeID]Node)
	var ways [][]osm.NodeID
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			id := strconv.FormatInt(int64(o.ID), 10)
			positions[o.ID] = Node{ID: id, Lat: o.Lat, Lng: o.Lon}
		case *osm.Way:
			if o.Tags.Find("highway") == "" {
				continue
			}
			ways = append(ways, o.Nodes.NodeIDs())
		}
	}
	if err := scanner.Err(); err != nil {
		return Description{}, fmt.Errorf("%w: scan osm: %v", ErrGraphLoad, err)
	}

	var desc Description
	seen := make(map[osm.NodeID]bool)
	addNode := func(id osm.NodeID) (Node, bool) {
		n, ok := positions[id]
		if !ok {
			return Node{}, false
		}
		if !seen[id] {
			seen[id] = true
			desc.Nodes = append(desc.Nodes, n)
		}
		return n, true
	}

	for _, way := range ways {
		for i := 0; i+1 < len(way); i++ {
			a, okA := addNode(way[i])
			b, okB := addNode(way[i+1])
			if !okA || !okB || (a.Lat == b.Lat && a.Lng == b.Lng) {
				continue
			}
			desc.Edges = append(desc.Edges, EdgeRef{From: a.ID, To: b.ID})
		}
	}
	return desc, nil
}

// Rename returns a copy of the description with node oldID renamed to newID.
func (d Description) Rename(oldID, newID string) Description {
	out := Description{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]EdgeRef, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		if n.ID == oldID {
			n.ID = newID
		}
		out.Nodes[i] = n
	}
	for i, e := range d.Edges {
		if e.From == oldID {
			e.From = newID
		}
		if e.To == oldID {
			e.To = newID
		}
		out.Edges[i] = e
	}
	return out
}
