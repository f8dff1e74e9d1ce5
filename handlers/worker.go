package handlers

import (
	"net/http"

	"asst/middleware"
	"asst/services/staff"
	"asst/utils"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves the worker dashboard.
type WorkerHandler struct {
	Staff staff.StaffService
}

func NewWorkerHandler(ss staff.StaffService) *WorkerHandler {
	return &WorkerHandler{Staff: ss}
}

// Dashboard handles GET /worker-dashboard.
func (h *WorkerHandler) Dashboard(c *gin.Context) {
	booked, err := h.Staff.WorkerDashboard(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookedServices": booked})
}
