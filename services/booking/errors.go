package booking

import "asst/utils"

const (
	msgProfileIncomplete = "You must complete your Profile before booking a service."
	msgBadRequest        = "Bad request"
)

// ErrProfileIncomplete blocks booking until name and phone number are set.
func ErrProfileIncomplete() *utils.AppError {
	return utils.Precondition(msgProfileIncomplete).WithExtra("redirect", "/profile")
}

func errBadRequest() *utils.AppError {
	return utils.BadRequest(msgBadRequest)
}
