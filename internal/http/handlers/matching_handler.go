// README: Corridor matching handlers: match a route against candidates, run the demo fixture.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmcloughlin/geohash"

	"campusride/internal/modules/matching"
	"campusride/internal/types"
)

// pickupGeohashPrecision of 7 gives cells of roughly 150 m.
const pickupGeohashPrecision = 7

type MatchingHandler struct {
	matching *matching.Service
}

func NewMatchingHandler(svc *matching.Service) *MatchingHandler {
	return &MatchingHandler{matching: svc}
}

type candidateBody struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    location `json:"location"`
	Destination location `json:"destination"`
	Contact     string   `json:"contact,omitempty"`
}

type corridorReq struct {
	Route            []location      `json:"route"`
	StartLocation    *location       `json:"start_location"`
	RouteSource      string          `json:"route_source"`
	RiderDestination *location       `json:"rider_destination"`
	CorridorWidthM   float64         `json:"corridor_width_m"`
	MaxCapacity      int             `json:"max_capacity"`
	Candidates       []candidateBody `json:"candidates"`
}

type matchBody struct {
	Candidate            candidateBody `json:"candidate"`
	DistanceFromRouteM   float64       `json:"distance_from_route_m"`
	PickupPoint          location      `json:"pickup_point"`
	PickupGeohash        string        `json:"pickup_geohash"`
	RouteSegmentIndex    int           `json:"route_segment_index"`
	PickupOrder          int           `json:"pickup_order"`
	EstimatedTimeMinutes float64       `json:"estimated_time_minutes"`
}

type corridorResp struct {
	Route            []location  `json:"route"`
	RiderDestination location    `json:"rider_destination"`
	CorridorWidthM   float64     `json:"corridor_width_m"`
	MaxCapacity      int         `json:"max_capacity"`
	AllMatches       []matchBody `json:"all_matches"`
	SelectedMatches  []matchBody `json:"selected_matches"`
}

func (h *MatchingHandler) Corridor(c *gin.Context) {
	var req corridorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := matching.MatchRequest{
		RouteSource:    req.RouteSource,
		CorridorWidthM: req.CorridorWidthM,
		MaxCapacity:    req.MaxCapacity,
	}
	for _, l := range req.Route {
		if !l.point().Valid() {
			writeError(c, http.StatusBadRequest, "route point out of range")
			return
		}
		cmd.Route = append(cmd.Route, l.point())
	}
	if req.StartLocation != nil {
		p := req.StartLocation.point()
		if !p.Valid() {
			writeError(c, http.StatusBadRequest, "start_location out of range")
			return
		}
		cmd.Start = &p
	}
	if req.RiderDestination != nil {
		p := req.RiderDestination.point()
		if !p.Valid() {
			writeError(c, http.StatusBadRequest, "rider_destination out of range")
			return
		}
		cmd.RiderDestination = &p
	}
	if req.Candidates != nil {
		cmd.Candidates = make([]matching.Candidate, 0, len(req.Candidates))
		for _, cb := range req.Candidates {
			if cb.ID == "" || !cb.Location.point().Valid() || !cb.Destination.point().Valid() {
				writeError(c, http.StatusBadRequest, "invalid candidate")
				return
			}
			cmd.Candidates = append(cmd.Candidates, matching.Candidate{
				ID:          types.ID(cb.ID),
				Name:        cb.Name,
				Position:    cb.Location.point(),
				Destination: cb.Destination.point(),
				Contact:     cb.Contact,
			})
		}
	}

	res, err := h.matching.MatchAlongRoute(c.Request.Context(), cmd)
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCorridorResp(res))
}

func (h *MatchingHandler) Simulate(c *gin.Context) {
	res, err := h.matching.Simulate(c.Request.Context())
	if err != nil {
		writeMatchingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toCorridorResp(res))
}

func toCorridorResp(res matching.MatchResult) corridorResp {
	route := make([]location, len(res.Route))
	for i, p := range res.Route {
		route[i] = toLocation(p)
	}
	return corridorResp{
		Route:            route,
		RiderDestination: toLocation(res.RiderDestination),
		CorridorWidthM:   res.Config.CorridorWidthM,
		MaxCapacity:      res.Config.MaxCapacity,
		AllMatches:       toMatchBodies(res.AllMatches),
		SelectedMatches:  toMatchBodies(res.Selected),
	}
}

func toMatchBodies(matches []matching.CorridorMatch) []matchBody {
	out := make([]matchBody, len(matches))
	for i, m := range matches {
		out[i] = matchBody{
			Candidate: candidateBody{
				ID:          string(m.Candidate.ID),
				Name:        m.Candidate.Name,
				Location:    toLocation(m.Candidate.Position),
				Destination: toLocation(m.Candidate.Destination),
				Contact:     m.Candidate.Contact,
			},
			DistanceFromRouteM:   round3(m.DistanceFromRouteM),
			PickupPoint:          toLocation(m.PickupPoint),
			PickupGeohash:        geohash.EncodeWithPrecision(m.PickupPoint.Lat, m.PickupPoint.Lng, pickupGeohashPrecision),
			RouteSegmentIndex:    m.RouteSegmentIndex,
			PickupOrder:          m.PickupOrder,
			EstimatedTimeMinutes: m.EstimatedTimeMinutes,
		}
	}
	return out
}
