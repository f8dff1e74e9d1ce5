package booking

import (
	"time"

	"asst/models"
	"asst/utils"
)

const (
	msgDateUnavailable = "The date that you selected is not available."
	msgDateInPast      = "The selected date must be in the future."
)

// IsDayAvailable reports whether the weekday of date is one of days.
func IsDayAvailable(days []string, date time.Time) bool {
	code := models.DayCode(date)
	for _, d := range days {
		if d == code {
			return true
		}
	}
	return false
}

// IsTimeInRange reports whether t falls in [start, end]. When start is after
// end the range wraps past midnight.
func IsTimeInRange(start, end, t models.TimeOfDay) bool {
	if start <= end {
		return start <= t && t <= end
	}
	return t >= start || t <= end
}

// IsAvailable combines the day and time-of-day checks.
func IsAvailable(days []string, start, end models.TimeOfDay, date time.Time, t models.TimeOfDay) bool {
	return IsDayAvailable(days, date) && IsTimeInRange(start, end, t)
}

// CheckAvailability runs every availability rule for a requested slot and
// collects all failures. Dates are compared without their time component and
// today is taken as-is from the caller.
func CheckAvailability(svc *models.BookableService, date time.Time, t models.TimeOfDay, today time.Time) utils.FieldErrors {
	errs := utils.FieldErrors{}

	if !IsDayAvailable(svc.DaysAvailable, date) {
		errs.Add(FieldDate, msgDateUnavailable)
	}
	if models.DateOnly(date).Before(models.DateOnly(today.In(date.Location()))) {
		errs.Add(FieldDate, msgDateInPast)
	}
	if !IsTimeInRange(svc.HourStart, svc.HourEnd, t) {
		errs.Add(FieldTime, "The selected time must be between "+svc.HourStart.String()+" and "+svc.HourEnd.String())
	}
	return errs
}
