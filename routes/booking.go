package routes

import (
	"asst/handlers"
	"asst/middleware"

	"github.com/gin-gonic/gin"
)

// WebhookPath receives Stripe events and is exempt from rate limiting.
const WebhookPath = "/payments/webhook"

// RegisterBookingRoutes registers the booking flow and the payment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/services/:slug/book", middleware.JWTAuthMiddleware(hb.Auth), hb.Booking.Book)

	payments := r.Group("/payments")
	{
		payments.GET("/booking-overview", middleware.JWTAuthMiddleware(hb.Auth), hb.Booking.Overview)
		// Called by Stripe; authenticated by the signature header.
		payments.POST("/webhook", hb.Booking.Webhook)
	}
}
