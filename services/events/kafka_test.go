package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"asst/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleBooking() *models.BookedService {
	return &models.BookedService{
		ID:              "b-1",
		UserID:          "u-1",
		Name:            "Deep Clean",
		Quantity:        2,
		TotalPriceCents: 10000,
		PaymentStatus:   models.PaymentPending,
		StripeSessionID: "cs_1",
	}
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "asst.bookings")

	evt := NewBookingEvent(TypeBookingCreated, sampleBooking())
	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "b-1", string(msg.Key))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeBookingCreated, decoded.Type)
	assert.Equal(t, int64(10000), decoded.TotalPriceCents)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, TypeBookingCreated, headers[HeaderEventType])
	assert.Equal(t, evt.EventID, headers[HeaderEventID])
}

func TestKafkaPublisherWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := newKafkaPublisher(&fakeWriter{err: boom}, "asst.bookings")

	err := p.Publish(context.Background(), NewBookingEvent(TypeBookingPaid, sampleBooking()))
	assert.ErrorIs(t, err, boom)
}

func TestKafkaPublisherRejectsAfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, "asst.bookings")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), NewBookingEvent(TypeBookingPaid, sampleBooking())), ErrPublisherClosed)
}
