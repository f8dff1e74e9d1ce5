package cron

import (
	"context"
	"errors"
	"testing"

	"asst/services/notification"
	"asst/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []notification.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestHandleBookingEmailTask(t *testing.T) {
	mailer := &recordingMailer{}
	task, _, err := tasks.NewBookingEmailTask(tasks.EmailPayload{
		BookingID: "b1",
		Kind:      "customer",
		From:      "bookings@example.com",
		To:        []string{"ann@example.com"},
		Subject:   "ASST - Service booked!",
		Body:      "Name: Deep Clean",
	})
	require.NoError(t, err)

	require.NoError(t, NewEmailMux(mailer).ProcessTask(context.Background(), task))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"ann@example.com"}, mailer.sent[0].To)
	assert.Equal(t, "Name: Deep Clean", mailer.sent[0].Body)
}

func TestHandleBookingEmailTaskRetriesSendFailures(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("relay down")}
	task, _, err := tasks.NewBookingEmailTask(tasks.EmailPayload{BookingID: "b1", Kind: "operator", To: []string{"ops@example.com"}})
	require.NoError(t, err)

	err = handleBookingEmailTask(mailer)(context.Background(), task)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleBookingEmailTaskSkipsMalformedPayload(t *testing.T) {
	task := asynq.NewTask(tasks.TypeBookingEmail, []byte("{not json"))

	err := handleBookingEmailTask(&recordingMailer{})(context.Background(), task)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
