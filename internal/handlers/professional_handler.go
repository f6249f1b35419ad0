package handlers

import (
	"net/http"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/services"
	"propmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfessionalHandler struct {
	*BaseHandler
	professionalService services.ProfessionalService
}

func NewProfessionalHandler(base *BaseHandler, professionalService services.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{
		BaseHandler:         base,
		professionalService: professionalService,
	}
}

func (h *ProfessionalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	professionals := rg.Group("/professionals")
	{
		professionals.GET("/me", append(h.Protected(auth.CapManageProfessional), h.GetMe)...)
		professionals.PUT("/me", append(h.Protected(auth.CapManageProfessional), h.UpdateMe)...)
	}
}

func (h *ProfessionalHandler) GetMe(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.professionalService.GetMe(h.GetDB(c), principal.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfessionalHandler) UpdateMe(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateProfessionalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.professionalService.UpdateMe(h.GetDB(c), principal.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
