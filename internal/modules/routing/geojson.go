// README: GeoJSON rendering of the graph and of route polylines.
package routing

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"campusride/internal/types"
)

// FeatureCollection renders nodes as Points and edges as LineStrings.
func (g *Graph) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range g.nodes {
		f := geojson.NewFeature(orb.Point{n.Lng, n.Lat})
		f.Properties["id"] = n.ID
		f.Properties["destination"] = n.ID == g.destinationID
		fc.Append(f)
	}
	for _, e := range g.Edges() {
		a, _ := g.node(e.From)
		b, _ := g.node(e.To)
		f := geojson.NewFeature(orb.LineString{{a.Lng, a.Lat}, {b.Lng, b.Lat}})
		f.Properties["from"] = e.From
		f.Properties["to"] = e.To
		f.Properties["length_km"] = g.adj[e.From][e.To]
		fc.Append(f)
	}
	return fc
}

// LineFeature renders a coordinate path as a GeoJSON LineString feature.
func LineFeature(path []types.Point) *geojson.Feature {
	ls := make(orb.LineString, 0, len(path))
	for _, p := range path {
		ls = append(ls, orb.Point{p.Lng, p.Lat})
	}
	return geojson.NewFeature(ls)
}
