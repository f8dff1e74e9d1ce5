package handlers

import (
	"errors"
	"net/http"

	"asst/middleware"
	"asst/services/booking"
	"asst/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StripeSignatureHeader carries the webhook signature.
const StripeSignatureHeader = "Stripe-Signature"

// MaxWebhookBodyBytes bounds a webhook payload. Stripe events are far smaller.
const MaxWebhookBodyBytes = 65536

// BookingHandler serves the booking flow and the payment webhook.
type BookingHandler struct {
	BookingSvc booking.BookingService
	// PublishableKey is handed to clients that open checkout themselves.
	PublishableKey string
}

func NewBookingHandler(bs booking.BookingService, publishableKey string) *BookingHandler {
	return &BookingHandler{BookingSvc: bs, PublishableKey: publishableKey}
}

// Book handles POST /services/:slug/book. The body is a JSON object or a
// form with one value per booking form field.
func (h *BookingHandler) Book(c *gin.Context) {
	values, err := formValues(c)
	if err != nil {
		badBody(c, err)
		return
	}

	result, err := h.BookingSvc.Book(c.Request.Context(), booking.BookingRequest{
		User:   middleware.CurrentUser(c),
		Slug:   c.Param("slug"),
		Values: values,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("Checkout session created",
		zap.String("bookingID", result.Booking.ID), zap.String("sessionID", result.SessionID))
	c.Header("Location", result.RedirectURL)
	c.JSON(http.StatusCreated, result)
}

// Overview handles GET /payments/booking-overview?session_id=...
func (h *BookingHandler) Overview(c *gin.Context) {
	booked, err := h.BookingSvc.GetOverview(c.Request.Context(), middleware.CurrentUser(c), c.Query("session_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":              booked,
		"totalPrice":           booked.TotalPrice(),
		"sessionId":            booked.StripeSessionID,
		"stripePublishableKey": h.PublishableKey,
	})
}

// Webhook handles POST /payments/webhook. The raw body is needed for the
// signature check.
func (h *BookingHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes)
	payload, err := c.GetRawData()
	if err != nil {
		appErr := utils.Integration("Failed to read webhook body", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr.HTTPStatus = http.StatusRequestEntityTooLarge
		}
		utils.RespondError(c, appErr)
		return
	}
	if err := h.BookingSvc.HandleWebhook(c.Request.Context(), payload, c.GetHeader(StripeSignatureHeader)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
