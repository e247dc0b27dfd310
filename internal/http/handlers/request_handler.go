// README: Pickup request handlers for create/get/cancel.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusride/internal/modules/request"
	"campusride/internal/types"
)

type RequestHandler struct {
	request *request.Service
}

func NewRequestHandler(svc *request.Service) *RequestHandler {
	return &RequestHandler{request: svc}
}

type createRequestReq struct {
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Pickup      *location `json:"pickup"`
	Destination *location `json:"destination"`
}

type requestResp struct {
	ID          types.ID       `json:"request_id"`
	Name        string         `json:"name"`
	Contact     string         `json:"contact,omitempty"`
	Pickup      location       `json:"pickup"`
	Destination location       `json:"destination"`
	Status      request.Status `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Pickup == nil || req.Destination == nil {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	id, err := h.request.Create(c.Request.Context(), request.CreateCommand{
		Name:        req.Name,
		Contact:     req.Contact,
		Pickup:      req.Pickup.point(),
		Destination: req.Destination.point(),
	})
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"request_id": id, "status": request.StatusPending})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid request id")
		return
	}
	r, err := h.request.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, requestResp{
		ID:          r.ID,
		Name:        r.Name,
		Contact:     r.Contact,
		Pickup:      toLocation(r.Pickup),
		Destination: toLocation(r.Destination),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	})
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid request id")
		return
	}
	if err := h.request.Cancel(c.Request.Context(), types.ID(id)); err != nil {
		writeRequestError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"request_id": id, "status": request.StatusCancelled})
}
