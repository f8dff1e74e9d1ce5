package access

import (
	"asst/models"
	"asst/utils"
)

// RequireUser rejects anonymous callers.
func RequireUser(user *models.User) error {
	if user == nil {
		return utils.Unauthorized("Authentication required")
	}
	return nil
}

// RequireManage allows users holding the booking.manage permission.
func RequireManage(user *models.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if !user.Can(models.PermissionManage) {
		return utils.Forbidden("You do not have permission to manage bookings")
	}
	return nil
}

// RequireWorker allows users flagged as workers.
func RequireWorker(user *models.User) error {
	if err := RequireUser(user); err != nil {
		return err
	}
	if !user.IsWorker() {
		return utils.Forbidden("Only workers can access this page")
	}
	return nil
}
