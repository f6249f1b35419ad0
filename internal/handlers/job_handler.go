package handlers

import (
	"net/http"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/services"
	"propmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService      services.JobService
	matchingService services.MatchingService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, matchingService services.MatchingService) *JobHandler {
	return &JobHandler{
		BaseHandler:     base,
		jobService:      jobService,
		matchingService: matchingService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		// Static segments are registered before /:jobId so they take precedence.
		customer := jobs.Group("/customer")
		{
			customer.POST("", append(h.Protected(auth.CapCreateJob), h.CreateJob)...)
			customer.POST("/finalise", append(h.Protected(auth.CapManageOwnJobs), h.FinaliseMatch)...)
			customer.GET("/:userId", append(h.Protected(auth.CapListCustomerJobs), h.ListCustomerJobs)...)
			customer.PUT("/:jobId", append(h.Protected(auth.CapManageOwnJobs), h.UpdateJob)...)
			customer.DELETE("/:jobId", append(h.Protected(auth.CapManageOwnJobs), h.DeleteJob)...)
			customer.POST("/:jobId/shortlist", append(h.Protected(auth.CapManageOwnJobs), h.Shortlist)...)
			customer.POST("/:jobId/suggestions/refresh", append(h.Protected(auth.CapManageOwnJobs), h.RefreshSuggestions)...)
			customer.POST("/:jobId/close", append(h.Protected(auth.CapManageOwnJobs), h.CloseJob)...)
		}

		professional := jobs.Group("/professional")
		{
			professional.GET("/applicable", append(h.Protected(auth.CapViewApplicableJobs), h.ListApplicable)...)
			professional.GET("/finalised", append(h.Protected(auth.CapViewApplicableJobs), h.ListFinalised)...)
		}

		jobs.GET("/:jobId", append(h.Protected(auth.CapReadJob), h.GetJob)...)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(h.GetDB(c), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(h.GetDB(c), principal, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListCustomerJobs serves GET /jobs/customer/:userId.
func (h *JobHandler) ListCustomerJobs(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListJobsForCustomer(h.GetDB(c), principal, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.UpdateJob(h.GetDB(c), principal, c.Param("jobId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(h.GetDB(c), principal, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Shortlist(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ShortlistRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Shortlist(h.GetDB(c), principal, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) RefreshSuggestions(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	job, err := h.jobService.RefreshSuggestions(h.GetDB(c), principal, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	job, err := h.jobService.CloseJob(h.GetDB(c), principal, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) FinaliseMatch(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.FinaliseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.matchingService.FinalizeMatch(h.GetDB(c), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListApplicable(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListApplicableJobs(h.GetDB(c), principal.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) ListFinalised(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListFinalisedJobs(h.GetDB(c), principal.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}
