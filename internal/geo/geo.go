// README: Geo primitives: great-circle distance and point-to-segment projection.
package geo

import (
	"math"

	"campusride/internal/types"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometres between two points.
func DistanceKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DistanceMeters is DistanceKm expressed in metres.
func DistanceMeters(a, b types.Point) float64 {
	return DistanceKm(a, b) * 1000
}

// ProjectOntoSegment returns the distance in metres from p to the segment
// [start, end] and the closest point on it.
//
// The projection parameter is solved in raw lat/lng space and only the final
// distance is geodesic, so results are only meaningful for short segments away
// from the poles.
func ProjectOntoSegment(p, start, end types.Point) (float64, types.Point) {
	a := p.Lat - start.Lat
	b := p.Lng - start.Lng
	c := end.Lat - start.Lat
	d := end.Lng - start.Lng

	lengthSq := c*c + d*d
	if lengthSq == 0 {
		return DistanceMeters(p, start), start
	}

	t := (a*c + b*d) / lengthSq
	switch {
	case t <= 0:
		return DistanceMeters(p, start), start
	case t >= 1:
		return DistanceMeters(p, end), end
	}

	closest := types.Point{
		Lat: start.Lat + t*c,
		Lng: start.Lng + t*d,
	}
	return DistanceMeters(p, closest), closest
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
