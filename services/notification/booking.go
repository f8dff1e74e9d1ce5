package notification

import (
	"context"
	"errors"
	"fmt"

	"asst/models"
	"asst/services/tasks"
	"asst/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookedSubject is the subject of both booking emails.
const BookedSubject = "ASST - Service booked!"

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedBookingNotifier queues one email to the customer and one to the
// operator mailbox.
type QueuedBookingNotifier struct {
	queue    TaskEnqueuer
	operator string
}

// NewQueuedBookingNotifier sends from and to operatorEmail, matching the
// DEFAULT_FROM_EMAIL setting.
func NewQueuedBookingNotifier(queue TaskEnqueuer, operatorEmail string) *QueuedBookingNotifier {
	return &QueuedBookingNotifier{queue: queue, operator: operatorEmail}
}

// BookingMailBody renders the shared part of both emails.
func BookingMailBody(b *models.BookedService) string {
	return fmt.Sprintf("Name: %s\nTotal price: %s\nSummary:\n%s", b.Name, b.TotalPrice(), b.Summary)
}

// BookingEmails builds the customer confirmation and the operator notice.
func (n *QueuedBookingNotifier) BookingEmails(b *models.BookedService) []tasks.EmailPayload {
	body := BookingMailBody(b)
	return []tasks.EmailPayload{
		{
			BookingID: b.ID,
			Kind:      "customer",
			From:      n.operator,
			To:        []string{b.UserEmail},
			Subject:   BookedSubject,
			Body:      "We're glad to inform you that the following service has been booked: \n" + body,
		},
		{
			BookingID: b.ID,
			Kind:      "operator",
			From:      n.operator,
			To:        []string{n.operator},
			Subject:   BookedSubject,
			Body:      fmt.Sprintf("The following service has been booked by %s : \n", b.UserEmail) + body,
		},
	}
}

// NotifyBookingPaid enqueues both emails. An email that is already queued is
// not an error.
func (n *QueuedBookingNotifier) NotifyBookingPaid(ctx context.Context, b *models.BookedService) error {
	logger := utils.GetLogger()
	var errs []error
	for _, payload := range n.BookingEmails(b) {
		task, opts, err := tasks.NewBookingEmailTask(payload)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		info, err := n.queue.EnqueueContext(ctx, task, opts...)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Info("Booking email already queued",
				zap.String("bookingID", b.ID), zap.String("kind", payload.Kind))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("enqueue %s email: %w", payload.Kind, err))
			continue
		}
		logger.Info("Booking email queued",
			zap.String("bookingID", b.ID),
			zap.String("kind", payload.Kind),
			zap.String("taskID", info.ID))
	}
	return errors.Join(errs...)
}
