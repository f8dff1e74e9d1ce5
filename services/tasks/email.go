package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeBookingEmail is the asynq task type of booking notification emails.
const TypeBookingEmail = "email:booking"

// EmailPayload is a plain-text email queued for delivery.
type EmailPayload struct {
	BookingID string   `json:"bookingId"`
	Kind      string   `json:"kind"` // "customer" or "operator"
	From      string   `json:"from"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
}

// NewBookingEmailTask builds the task for p. The task id is derived from the
// booking and recipient kind, so enqueueing the same email twice is rejected
// by the queue with asynq.ErrTaskIDConflict.
func NewBookingEmailTask(p EmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEmail, b)
	opts := []asynq.Option{
		asynq.TaskID(fmt.Sprintf("booking-email:%s:%s", p.BookingID, p.Kind)),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		asynq.Retention(24 * time.Hour),
	}
	return task, opts, nil
}

// ParseEmailPayload decodes the payload of a TypeBookingEmail task.
func ParseEmailPayload(t *asynq.Task) (EmailPayload, error) {
	var p EmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeBookingEmail, err)
	}
	return p, nil
}
