package routes

import (
	"net/http"
	"time"

	"asst/handlers"
	"asst/middleware"
	"asst/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers registration, sign in and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", hb.Users.Register)
		auth.POST("/login", hb.Users.Login)
	}

	profile := r.Group("/profile")
	{
		// Protected routes (Require Authentication)
		profile.Use(middleware.JWTAuthMiddleware(hb.Auth))
		profile.GET("", hb.Users.GetProfile)
		profile.PUT("", hb.Users.UpdateProfile)
	}
}

// RegisterServiceRoutes registers the public catalog.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	services := r.Group("/services")
	{
		services.GET("", hb.Services.ListServices)
		services.GET("/:slug", hb.Services.GetService)
	}
}

// RegisterAdminRoutes sets up the /manage back-office. Handlers check the
// booking.manage permission.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	manage := r.Group("/manage")
	{
		manage.Use(middleware.JWTAuthMiddleware(hb.Auth))

		manage.GET("/services", hb.Admin.ListServices)
		manage.POST("/services", hb.Admin.CreateService)
		manage.PUT("/services/:slug", hb.Admin.UpdateService)
		manage.DELETE("/services/:slug", hb.Admin.DeleteService)

		manage.GET("/services/:slug/inputs", hb.Admin.ListInputs)
		manage.POST("/services/:slug/inputs", hb.Admin.CreateInput)
		manage.DELETE("/services/:slug/inputs/:inputID", hb.Admin.DeleteInput)

		manage.GET("/booked-services", hb.Admin.ListBooked)
		manage.PUT("/booked-services/:id/assign-worker", hb.Admin.AssignWorker)
		manage.POST("/booked-services/:id/confirm", hb.Admin.ConfirmBooking)

		manage.GET("/workers", hb.Admin.ListWorkers)
		manage.POST("/workers", hb.Admin.PromoteWorker)
		manage.DELETE("/workers/:id", hb.Admin.DemoteWorker)
	}
}

// RegisterWorkerRoutes registers the worker dashboard.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/worker-dashboard", middleware.JWTAuthMiddleware(hb.Auth), hb.Workers.Dashboard)
}

// RegisterHealthRoute registers a health-check endpoint. With no monitor the
// route only reports that the process is up.
func RegisterHealthRoute(r *gin.Engine, monitor *utils.HealthMonitor) {
	r.GET("/health", func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := monitor.Status()
		if !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "health": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, monitor *utils.HealthMonitor, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin, WebhookPath))

	RegisterHealthRoute(r, monitor)
	RegisterUserRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
}
