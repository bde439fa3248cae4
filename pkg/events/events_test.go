package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{ subjects []string }

func (f *failingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return errors.New("nats: connection closed")
}

func (f *failingPublisher) Close() error { return nil }

func TestEmitSwallowsPublishErrors(t *testing.T) {
	p := &failingPublisher{}
	assert.NotPanics(t, func() {
		Emit(context.Background(), p, BookingCreated, BookingCreatedEvent{BookingID: 1})
	})
	assert.Equal(t, []string{BookingCreated}, p.subjects)
}

func TestEmitToNilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, PaymentCreated, PaymentCreatedEvent{PaymentID: 1})
	})
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), CustomerVerified, nil))
}
