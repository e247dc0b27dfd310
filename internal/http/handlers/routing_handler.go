// README: Routing handlers: shortest path to the destination, destination marker, graph GeoJSON.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusride/internal/modules/routing"
)

type RoutingHandler struct {
	routing *routing.Service
}

func NewRoutingHandler(svc *routing.Service) *RoutingHandler {
	return &RoutingHandler{routing: svc}
}

type shortestPathReq struct {
	StartLocation *location `json:"start_location"`
}

type shortestPathResp struct {
	StartNode  string      `json:"start_node"`
	EndNode    string      `json:"end_node"`
	DistanceKm float64     `json:"distance_km"`
	Nodes      []string    `json:"nodes"`
	Path       [][]float64 `json:"path"`
}

// ShortestPath answers with the node path and [lat, lng] polyline, or a GeoJSON
// LineString feature when called with ?format=geojson.
func (h *RoutingHandler) ShortestPath(c *gin.Context) {
	var req shortestPathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.StartLocation == nil {
		writeError(c, http.StatusBadRequest, "missing start_location")
		return
	}
	if !req.StartLocation.point().Valid() {
		writeError(c, http.StatusBadRequest, "start_location out of range")
		return
	}

	res, err := h.routing.RouteToDestination(req.StartLocation.Latitude, req.StartLocation.Longitude)
	if err != nil {
		writeRoutingError(c, err)
		return
	}
	if !res.Found() {
		writeRoutingError(c, routing.ErrNoRoute)
		return
	}

	if c.Query("format") == "geojson" {
		f := routing.LineFeature(res.Path)
		f.Properties["start_node"] = res.StartNode
		f.Properties["end_node"] = res.EndNode
		f.Properties["distance_km"] = round3(res.DistanceKm)
		f.Properties["nodes"] = res.NodeIDs
		writeJSON(c, http.StatusOK, f)
		return
	}

	path := make([][]float64, len(res.Path))
	for i, p := range res.Path {
		path[i] = p.LatLng()
	}
	writeJSON(c, http.StatusOK, shortestPathResp{
		StartNode:  res.StartNode,
		EndNode:    res.EndNode,
		DistanceKm: round3(res.DistanceKm),
		Nodes:      res.NodeIDs,
		Path:       path,
	})
}

func (h *RoutingHandler) Destination(c *gin.Context) {
	n := h.routing.Destination()
	writeJSON(c, http.StatusOK, map[string]any{
		"id":        n.ID,
		"latitude":  n.Lat,
		"longitude": n.Lng,
	})
}

func (h *RoutingHandler) Graph(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.routing.Graph().FeatureCollection())
}
