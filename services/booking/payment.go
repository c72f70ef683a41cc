package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	checkout "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"reservo/models"
)

// StripePaymentService implements PaymentService on Stripe Checkout.
type StripePaymentService struct {
	Logger         *zap.Logger
	Currency       string
	ReservationTTL time.Duration
	SuccessURL     string
	CancelURL      string
}

func NewStripePaymentService(logger *zap.Logger, currency string, reservationTTL time.Duration) *StripePaymentService {
	return &StripePaymentService{
		Logger:         logger,
		Currency:       currency,
		ReservationTTL: reservationTTL,
	}
}

// CreateSession opens a Stripe Checkout session for the booking amount.
// Stripe enforces a 30 minute floor on session expiry, so the reservation
// TTL is clamped upward when shorter.
func (s *StripePaymentService) CreateSession(ctx context.Context, booking *models.Booking, amount float64) (*models.PaymentSession, error) {
	expiresAt := time.Now().Add(s.ReservationTTL)
	if s.ReservationTTL < 30*time.Minute {
		expiresAt = time.Now().Add(30 * time.Minute)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Reserva " + booking.ServiceID),
					},
					UnitAmount: stripe.Int64(int64(amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ExpiresAt:         stripe.Int64(expiresAt.Unix()),
		ClientReferenceID: stripe.String(booking.ID),
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
	}
	params.Context = ctx

	checkoutSession, err := checkout.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.Logger.Info("stripe checkout session opened",
		zap.String("bookingId", booking.ID),
		zap.String("sessionId", checkoutSession.ID),
	)

	return &models.PaymentSession{
		ID:         checkoutSession.ID,
		BookingID:  booking.ID,
		Amount:     amount,
		Currency:   s.Currency,
		SessionURL: checkoutSession.URL,
		ExpiresAt:  expiresAt,
		Status:     models.PaymentPending,
	}, nil
}
