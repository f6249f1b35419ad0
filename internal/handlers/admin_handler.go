package handlers

import (
	"fmt"
	"net/http"
	"time"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/services"
	"propmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.PUT("/professionals/:id/verify", append(h.Protected(auth.CapVerifyProfessionals), h.VerifyProfessional)...)
		admin.PUT("/professionals/:id/reject", append(h.Protected(auth.CapVerifyProfessionals), h.RejectProfessional)...)

		admin.GET("/professionals", append(h.Protected(auth.CapAdminRead), h.ListProfessionals)...)
		admin.GET("/customers", append(h.Protected(auth.CapAdminRead), h.ListCustomers)...)
		admin.GET("/jobs", append(h.Protected(auth.CapAdminRead), h.ListJobs)...)
		admin.GET("/jobs/export", append(h.Protected(auth.CapAdminRead), h.ExportJobs)...)
	}
}

func (h *AdminHandler) VerifyProfessional(c *gin.Context) {
	resp, err := h.adminService.VerifyProfessional(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) RejectProfessional(c *gin.Context) {
	resp, err := h.adminService.RejectProfessional(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProfessionals accepts an optional ?status= filter.
func (h *AdminHandler) ListProfessionals(c *gin.Context) {
	var query dto.ProfessionalListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	profiles, err := h.adminService.ListProfessionals(h.GetDB(c), models.VerificationStatus(query.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.adminService.ListCustomers(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	jobs, err := h.adminService.ListJobs(h.GetDB(c), models.JobStatus(query.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *AdminHandler) ExportJobs(c *gin.Context) {
	data, err := h.adminService.ExportJobs(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("jobs-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}
