package handlers

import (
	"net/http"

	"propmatch_backend/internal/services"
	"propmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// LocationHandler serves the public suburb reference data.
type LocationHandler struct {
	*BaseHandler
	locationService services.LocationService
}

func NewLocationHandler(base *BaseHandler, locationService services.LocationService) *LocationHandler {
	return &LocationHandler{
		BaseHandler:     base,
		locationService: locationService,
	}
}

func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	location := rg.Group("/location")
	{
		location.GET("/regions", h.Regions)
		location.GET("/states", h.States)
		location.GET("/search", h.Search)
	}
}

func (h *LocationHandler) Regions(c *gin.Context) {
	regions, err := h.locationService.Regions(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *LocationHandler) States(c *gin.Context) {
	states, err := h.locationService.States(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

func (h *LocationHandler) Search(c *gin.Context) {
	var query dto.SuburbSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	suburbs, err := h.locationService.Search(h.GetDB(c), query.Query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, suburbs)
}
