package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/service"
)

type resourceRequest struct {
	Name       string          `json:"name" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourly_rate" binding:"gte=0"`
	Active     *bool           `json:"active"`
}

func (r resourceRequest) input() service.ResourceInput {
	return service.ResourceInput{Name: r.Name, HourlyRate: r.HourlyRate, Active: r.Active}
}

func (h *Handler) listResources(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	resources, err := h.resources.ListResources(c.Request.Context(), kind)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]resourceResponse, 0, len(resources))
	for _, resource := range resources {
		result = append(result, toResource(resource))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createResource(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req resourceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resource, err := h.resources.CreateResource(c.Request.Context(), principal, kind, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResource(*resource))
}

func (h *Handler) updateResource(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req resourceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resource, err := h.resources.UpdateResource(c.Request.Context(), principal, kind, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResource(*resource))
}

func (h *Handler) toggleResource(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resource, err := h.resources.ToggleResource(c.Request.Context(), principal, kind, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResource(*resource))
}

func (h *Handler) deleteResource(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.resources.DeleteResource(c.Request.Context(), principal, kind, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
