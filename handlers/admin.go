package handlers

import (
	"net/http"

	"asst/middleware"
	"asst/services/access"
	"asst/services/catalog"
	"asst/services/staff"
	"asst/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the /manage back-office. Permission checks happen in
// the services.
type AdminHandler struct {
	Catalog catalog.CatalogService
	Staff   staff.StaffService
}

func NewAdminHandler(cs catalog.CatalogService, ss staff.StaffService) *AdminHandler {
	return &AdminHandler{Catalog: cs, Staff: ss}
}

// bindServiceInput reads a service form from JSON or multipart, including
// an optional "thumbnail" file. The returned func releases the upload.
func bindServiceInput(c *gin.Context) (catalog.ServiceInput, func(), error) {
	var input catalog.ServiceInput
	if err := c.ShouldBind(&input); err != nil {
		return input, func() {}, err
	}
	file, name, err := optionalFile(c, "thumbnail")
	if err != nil {
		return input, func() {}, err
	}
	if file == nil {
		return input, func() {}, nil
	}
	input.Thumbnail = &catalog.ImageUpload{File: file, Filename: name}
	return input, func() { file.Close() }, nil
}

// requireManager guards handlers whose service call is public.
func requireManager(c *gin.Context) error {
	return access.RequireManage(middleware.CurrentUser(c))
}

// ListServices handles GET /manage/services.
func (h *AdminHandler) ListServices(c *gin.Context) {
	if err := requireManager(c); err != nil {
		utils.RespondError(c, err)
		return
	}
	page, err := h.Catalog.ListServices(c.Request.Context(), pageParam(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateService handles POST /manage/services.
func (h *AdminHandler) CreateService(c *gin.Context) {
	input, release, err := bindServiceInput(c)
	defer release()
	if err != nil {
		badBody(c, err)
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "The service was created successfully.", "service": svc})
}

// UpdateService handles PUT /manage/services/:slug.
func (h *AdminHandler) UpdateService(c *gin.Context) {
	input, release, err := bindServiceInput(c)
	defer release()
	if err != nil {
		badBody(c, err)
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The service was updated successfully.", "service": svc})
}

// DeleteService handles DELETE /manage/services/:slug.
func (h *AdminHandler) DeleteService(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The service was deleted successfully."})
}

// ListInputs handles GET /manage/services/:slug/inputs.
func (h *AdminHandler) ListInputs(c *gin.Context) {
	inputs, err := h.Catalog.ListInputs(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inputs)
}

// CreateInput handles POST /manage/services/:slug/inputs.
func (h *AdminHandler) CreateInput(c *gin.Context) {
	var req catalog.InputRequest
	if err := c.ShouldBind(&req); err != nil {
		badBody(c, err)
		return
	}
	input, err := h.Catalog.CreateInput(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, input)
}

// DeleteInput handles DELETE /manage/services/:slug/inputs/:inputID.
func (h *AdminHandler) DeleteInput(c *gin.Context) {
	err := h.Catalog.DeleteInput(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), c.Param("inputID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The input was deleted successfully."})
}

// ListBooked handles GET /manage/booked-services.
func (h *AdminHandler) ListBooked(c *gin.Context) {
	page, err := h.Staff.ListBooked(c.Request.Context(), middleware.CurrentUser(c), pageParam(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// AssignWorker handles PUT /manage/booked-services/:id/assign-worker.
func (h *AdminHandler) AssignWorker(c *gin.Context) {
	var req staff.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	booked, err := h.Staff.AssignWorker(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.WorkerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assigned the worker successfully!", "booking": booked})
}

// ConfirmBooking handles POST /manage/booked-services/:id/confirm.
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	booked, err := h.Staff.CapturePayment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "The payment was captured.", "booking": booked})
}

// ListWorkers handles GET /manage/workers.
func (h *AdminHandler) ListWorkers(c *gin.Context) {
	workers, err := h.Staff.ListWorkers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

// PromoteWorker handles POST /manage/workers.
func (h *AdminHandler) PromoteWorker(c *gin.Context) {
	var req staff.WorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	worker, err := h.Staff.PromoteWorker(c.Request.Context(), middleware.CurrentUser(c), req.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Successfully added a new worker!", "worker": worker})
}

// DemoteWorker handles DELETE /manage/workers/:id.
func (h *AdminHandler) DemoteWorker(c *gin.Context) {
	if _, err := h.Staff.DemoteWorker(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully removed the worker."})
}
