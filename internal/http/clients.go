package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/agrojobs/internal/service"
)

type locationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type createClientRequest struct {
	Name      string            `json:"name" binding:"required"`
	Type      string            `json:"type" binding:"required"`
	Locations []locationRequest `json:"locations" binding:"dive"`
}

type updateClientRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type geocodeRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Name      string   `json:"name"`
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	result := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		result = append(result, toClient(client))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.GetClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClient(*client))
}

func (h *Handler) createClient(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	input := service.CreateClientInput{Name: req.Name, Type: req.Type}
	for _, loc := range req.Locations {
		input.Locations = append(input.Locations, service.LocationInput{Name: loc.Name, Address: loc.Address})
	}
	client, err := h.clients.CreateClient(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClient(*client))
}

func (h *Handler) updateClient(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req updateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clients.UpdateClient(c.Request.Context(), principal, id, service.UpdateClientInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClient(*client))
}

func (h *Handler) deleteClient(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.clients.DeleteClient(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addLocation(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req locationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	loc, err := h.clients.AddLocation(c.Request.Context(), principal, clientID, service.LocationInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLocation(*loc))
}

func (h *Handler) deleteLocation(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	clientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	locationID, ok := uuidParam(c, "locationID")
	if !ok {
		return
	}
	if err := h.clients.DeleteLocation(c.Request.Context(), principal, clientID, locationID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) geocode(c *gin.Context) {
	var req geocodeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	loc, err := h.clients.Geocode(service.GeocodeInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Name:      req.Name,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": loc.Name, "address": loc.Address})
}
