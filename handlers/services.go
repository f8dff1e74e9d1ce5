package handlers

import (
	"net/http"

	"asst/models"
	"asst/services/booking"
	"asst/services/catalog"
	"asst/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the public catalog.
type ServiceHandler struct {
	Catalog catalog.CatalogService
	Booking booking.BookingService
}

func NewServiceHandler(cs catalog.CatalogService, bs booking.BookingService) *ServiceHandler {
	return &ServiceHandler{Catalog: cs, Booking: bs}
}

// ServiceDetail is a service with the form used to book it.
type ServiceDetail struct {
	Service *models.BookableService `json:"service"`
	Price   string                  `json:"price"`
	Form    *booking.Form           `json:"form"`
}

// ListServices handles GET /services?page=N.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	page, err := h.Catalog.ListServices(c.Request.Context(), pageParam(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetService handles GET /services/:slug.
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, form, err := h.Booking.GetServiceForm(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ServiceDetail{Service: svc, Price: svc.Price(), Form: form})
}
