package handlers

import (
	"asst/middleware"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth resolves bearer tokens for protected routes.
	Auth middleware.Authenticator

	Services *ServiceHandler
	Booking  *BookingHandler
	Users    *UserHandler
	Admin    *AdminHandler
	Workers  *WorkerHandler
}
