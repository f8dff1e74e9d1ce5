package notification

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"asst/models"
	"asst/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: task.Type()}, nil
}

func paidBooking() *models.BookedService {
	return &models.BookedService{
		ID:              "b-1",
		UserEmail:       "jane@example.com",
		Name:            "Deep Clean",
		Summary:         "Description: Full clean\nPrice per unit: 50.00",
		TotalPriceCents: 10000,
		PaymentStatus:   models.PaymentCompleted,
	}
}

func TestNotifyBookingPaidQueuesTwoEmails(t *testing.T) {
	q := &fakeQueue{}
	n := NewQueuedBookingNotifier(q, "ops@asst.test")

	require.NoError(t, n.NotifyBookingPaid(context.Background(), paidBooking()))
	require.Len(t, q.tasks, 2)

	customer, err := tasks.ParseEmailPayload(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, customer.To)
	assert.Equal(t, BookedSubject, customer.Subject)
	assert.True(t, strings.HasPrefix(customer.Body, "We're glad to inform you"))
	assert.Contains(t, customer.Body, "Name: Deep Clean\nTotal price: 100.00\nSummary:\nDescription: Full clean")

	operator, err := tasks.ParseEmailPayload(q.tasks[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@asst.test"}, operator.To)
	assert.Contains(t, operator.Body, "booked by jane@example.com")
}

func TestNotifyBookingPaidIgnoresAlreadyQueued(t *testing.T) {
	n := NewQueuedBookingNotifier(&fakeQueue{err: asynq.ErrTaskIDConflict}, "ops@asst.test")
	assert.NoError(t, n.NotifyBookingPaid(context.Background(), paidBooking()))
}

func TestNotifyBookingPaidReportsQueueFailure(t *testing.T) {
	boom := errors.New("redis down")
	n := NewQueuedBookingNotifier(&fakeQueue{err: boom}, "ops@asst.test")
	assert.ErrorIs(t, n.NotifyBookingPaid(context.Background(), paidBooking()), boom)
}

func sentMessage(t *testing.T, msg Message) (*mail.Msg, string) {
	t.Helper()
	var sent *mail.Msg
	m := NewSMTPMailer("smtp.asst.test", 587, "", "")
	m.send = func(_ context.Context, out *mail.Msg) error {
		sent = out
		return nil
	}
	require.NoError(t, m.Send(context.Background(), msg))
	require.NotNil(t, sent)

	var raw bytes.Buffer
	_, err := sent.WriteTo(&raw)
	require.NoError(t, err)
	return sent, raw.String()
}

func TestSMTPMailerSend(t *testing.T) {
	sent, raw := sentMessage(t, Message{
		From: "ops@asst.test", To: []string{"jane@example.com"},
		Subject: BookedSubject, Body: "line one\nline two",
	})

	from, err := sent.GetSender(false)
	require.NoError(t, err)
	assert.Equal(t, "ops@asst.test", from)
	to, err := sent.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, to)

	assert.Contains(t, raw, "Subject: ASST - Service booked!")
	assert.Contains(t, raw, "Date: ")
	assert.Contains(t, raw, "Message-ID: <")
	assert.Contains(t, raw, "Content-Transfer-Encoding: quoted-printable")
	assert.Contains(t, raw, "line one")
	assert.Contains(t, raw, "line two")
}

func TestSMTPMailerEncodesNonASCII(t *testing.T) {
	_, raw := sentMessage(t, Message{
		From: "ops@asst.test", To: []string{"jane@example.com"},
		Subject: "Réservé", Body: "Notes - Ça marche, merci!",
	})

	assert.Contains(t, raw, "=?UTF-8?q?R=C3=A9serv=C3=A9?=")
	assert.Contains(t, raw, "=C3=87a marche")
	assert.NotContains(t, raw, "é")
	assert.NotContains(t, raw, "Ç")
}

func TestSMTPMailerRejectsInvalidAddress(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "")
	m.send = func(context.Context, *mail.Msg) error {
		t.Fatal("nothing should be sent")
		return nil
	}
	assert.Error(t, m.Send(context.Background(), Message{From: "ops@asst.test", To: []string{"not an address"}}))
}

func TestSMTPMailerReportsDeliveryFailure(t *testing.T) {
	boom := errors.New("connection refused")
	m := NewSMTPMailer("localhost", 25, "", "")
	m.send = func(context.Context, *mail.Msg) error { return boom }

	err := m.Send(context.Background(), Message{From: "ops@asst.test", To: []string{"jane@example.com"}, Subject: "Hi"})
	assert.ErrorIs(t, err, boom)
}

func TestSMTPMailerAuthOnlyWithUsername(t *testing.T) {
	assert.Len(t, NewSMTPMailer("localhost", 25, "", "").clientOptions(), 2)
	assert.Len(t, NewSMTPMailer("localhost", 587, "ops", "secret").clientOptions(), 5)
}

func TestSMTPMailerRequiresRecipient(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "")
	assert.Error(t, m.Send(context.Background(), Message{From: "a@b.c"}))
}
