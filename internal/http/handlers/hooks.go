package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/platform/payments"
	"github.com/diagnosis/car-rental/pkg/events"
	"github.com/diagnosis/car-rental/pkg/logger"
)

func PublishBookingCreated(p events.Publisher) func(context.Context, *domain.Booking) {
	return func(ctx context.Context, b *domain.Booking) {
		events.Emit(ctx, p, events.BookingCreated, events.BookingCreatedEvent{
			BookingID:   b.ID,
			CarID:       b.CarID,
			CustomerID:  b.CustomerID,
			TotalAmount: b.TotalAmount.StringFixed(2),
			CreatedAt:   time.Now(),
		})
	}
}

func PublishBookingDeleted(p events.Publisher) func(context.Context, int64) {
	return func(ctx context.Context, id int64) {
		events.Emit(ctx, p, events.BookingDeleted, events.BookingDeletedEvent{
			BookingID: id,
			DeletedAt: time.Now(),
		})
	}
}

func PublishPaymentCreated(p events.Publisher) func(context.Context, *domain.Payment) {
	return func(ctx context.Context, pay *domain.Payment) {
		evt := events.PaymentCreatedEvent{
			PaymentID:     pay.ID,
			BookingID:     pay.BookingID,
			Amount:        pay.Amount.StringFixed(2),
			PaymentMethod: pay.PaymentMethod,
			CreatedAt:     time.Now(),
		}
		if pay.TransactionID != nil {
			evt.TransactionID = *pay.TransactionID
		}
		events.Emit(ctx, p, events.PaymentCreated, evt)
	}
}

// CreatePaymentIntent opens a provider intent for card payments before the
// row is written and records its ID. Other payment methods pass through.
func CreatePaymentIntent(gw payments.Gateway) func(context.Context, *domain.CreatePaymentReq) error {
	return func(ctx context.Context, in *domain.CreatePaymentReq) error {
		if gw == nil || !strings.EqualFold(in.PaymentMethod, domain.PaymentMethodCard) {
			return nil
		}
		txID, err := gw.CreateIntent(ctx, in.BookingID, in.Amount)
		if err != nil {
			return err
		}
		in.TransactionID = &txID
		return nil
	}
}

// CancelPaymentIntent voids the intent opened by CreatePaymentIntent when the
// payment row could not be stored.
func CancelPaymentIntent(gw payments.Gateway) func(context.Context, *domain.CreatePaymentReq) {
	return func(ctx context.Context, in *domain.CreatePaymentReq) {
		if gw == nil || in.TransactionID == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := gw.CancelIntent(ctx, *in.TransactionID); err != nil {
			logger.ErrorContext(ctx, "Failed to cancel orphaned payment intent",
				"intent_id", *in.TransactionID, "booking_id", in.BookingID, "error", err)
		}
	}
}
