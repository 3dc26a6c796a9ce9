package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/frontdesk-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Status returns the worker snapshot and the open-bill backlog
// @Summary Get background job status
// @Description Worker counters, the last run of each scheduled job (balance refresh) and the number of open bills
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.JobStatus
// @Failure 500 {object} map[string]string
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status, err := h.jobService.GetStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// RefreshBalances queues a balance refresh outside the schedule
// @Summary Queue a balance refresh
// @Description Re-runs the balance calculator over all open bills on the worker queue
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 202 {object} map[string]interface{}
// @Router /jobs/balance-refresh [post]
func (h *JobHandler) RefreshBalances(c *gin.Context) {
	queued := h.jobService.QueueBalanceRefresh()
	c.JSON(http.StatusAccepted, gin.H{
		"message":      "Balance refresh queued",
		"job":          services.BalanceRefreshJob,
		"queue_length": queued,
	})
}
