// README: Base handler utilities (JSON helpers, wire shapes, error mapping).
package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusride/internal/maps"
	"campusride/internal/modules/matching"
	"campusride/internal/modules/request"
	"campusride/internal/modules/routing"
	"campusride/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

// location is the {latitude, longitude} shape used by every endpoint.
type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l location) point() types.Point {
	return types.Point{Lat: l.Latitude, Lng: l.Longitude}
}

func toLocation(p types.Point) location {
	return location{Latitude: p.Lat, Longitude: p.Lng}
}

// isValidID ensures IDs are alphanumeric and at most 32 chars (matches the ID generator).
func isValidID(v string) bool {
	if v == "" || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeRoutingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeInternal(c, err)
	}
}

func writeMatchingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matching.ErrInvalidRoute), errors.Is(err, matching.ErrInvalidConfig):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, routing.ErrNoRoute), errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeInternal(c, err)
	}
}

func writeRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, request.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, request.ErrInvalidState), errors.Is(err, request.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeInternal(c, err)
	}
}
