package booking

import (
	"context"
	"time"

	"reservo/models"
)

// FinalizerService turns a fully-specified selection into a persisted
// booking. The conversation context inside the session store is the single
// source of truth for ConfirmFromConversation; callers' local caches are
// rendering views only.
type FinalizerService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	ConfirmFromConversation(ctx context.Context, conversationID string) (*models.TransitionResult, error)
}

// PaymentService creates a checkout session for a payment-pending booking.
type PaymentService interface {
	CreateSession(ctx context.Context, booking *models.Booking, amount float64) (*models.PaymentSession, error)
}

// ExpiryScheduler queues a deferred expiry check for a payment-pending
// booking.
type ExpiryScheduler interface {
	ScheduleExpiry(bookingID string, delay time.Duration) error
}
