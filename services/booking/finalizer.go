package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reservo/database/repository"
	"reservo/models"
	"reservo/services/catalog"
	"reservo/services/session"
)

const (
	confirmedText      = "¡Reserva confirmada con éxito! 🎉 \n\nTe hemos enviado un correo con todos los detalles de tu cita."
	pendingPaymentText = "Tu hora quedó reservada. 💳 Para confirmarla, completa el pago dentro de los próximos %d minutos:\n%s"
)

// DefaultFinalizer implements FinalizerService.
type DefaultFinalizer struct {
	Repo     repository.BookingRepository
	Sessions session.Store
	Catalog  catalog.Repository
	Payments PaymentService  // nil disables the payment flow
	Expiry   ExpiryScheduler // nil disables reservation expiry
	Logger   *zap.Logger

	TenantID       string
	RequirePayment bool
	ReservationTTL time.Duration
}

// CreateBooking validates the selection set, persists the booking, and,
// when payment is required, opens a checkout session plus a deferred
// expiry check. The booking record and the conversation context are never
// the same object; nothing looks committed until this method returns.
func (f *DefaultFinalizer) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if req.ServiceID == "" {
		return nil, NewMissingSelectionError("service")
	}
	if req.ProviderID == "" {
		return nil, NewMissingSelectionError("provider")
	}
	if req.Start.IsZero() {
		return nil, NewMissingSelectionError("time slot")
	}

	svc, ok := f.Catalog.GetService(req.ServiceID)
	if !ok {
		return nil, NewFinalizeError(fmt.Sprintf("unknown service %q", req.ServiceID))
	}
	if _, ok := f.Catalog.GetProvider(req.ProviderID); !ok {
		return nil, NewFinalizeError(fmt.Sprintf("unknown provider %q", req.ProviderID))
	}

	end := req.End
	if end.IsZero() {
		end = req.Start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		TenantID:      req.TenantID,
		ServiceID:     req.ServiceID,
		ProviderID:    req.ProviderID,
		Start:         req.Start,
		End:           end,
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentNone,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     time.Now(),
	}
	if f.RequirePayment {
		booking.Status = models.BookingPendingPayment
		booking.PaymentStatus = models.PaymentPending
	}

	if err := f.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if f.RequirePayment && f.Payments != nil {
		paySession, err := f.Payments.CreateSession(ctx, booking, svc.Price)
		if err != nil {
			// The hold stays; the expiry worker reclaims it if payment
			// never arrives.
			f.Logger.Error("failed to create payment session",
				zap.String("bookingId", booking.ID), zap.Error(err))
		} else {
			f.Logger.Info("payment session created",
				zap.String("bookingId", booking.ID),
				zap.String("sessionId", paySession.ID),
				zap.String("url", paySession.SessionURL))
		}
		if f.Expiry != nil {
			if err := f.Expiry.ScheduleExpiry(booking.ID, f.ReservationTTL); err != nil {
				f.Logger.Error("failed to schedule reservation expiry",
					zap.String("bookingId", booking.ID), zap.Error(err))
			}
		}
	}

	f.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("serviceId", booking.ServiceID),
		zap.String("providerId", booking.ProviderID),
		zap.String("status", string(booking.Status)),
	)
	return booking, nil
}

// ConfirmFromConversation materializes a booking from the dialogue
// context alone. A context that already carries a booking id returns the
// existing booking instead of creating a second one.
func (f *DefaultFinalizer) ConfirmFromConversation(ctx context.Context, conversationID string) (*models.TransitionResult, error) {
	if conversationID == "" {
		return nil, NewFinalizeError("missing conversation id")
	}

	chatCtx, err := f.Sessions.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}

	if chatCtx.BookingID != "" {
		existing, err := f.Repo.GetByID(chatCtx.BookingID)
		if err != nil {
			return nil, fmt.Errorf("conversation references unknown booking %s: %w", chatCtx.BookingID, err)
		}
		return f.completedResult(conversationID, existing), nil
	}

	if chatCtx.ServiceID == "" {
		return nil, NewMissingSelectionError("service")
	}
	if chatCtx.SelectedSlot == nil {
		return nil, NewMissingSelectionError("time slot")
	}
	if chatCtx.FullName == "" || chatCtx.Email == "" || chatCtx.Phone == "" {
		return nil, NewMissingSelectionError("customer details")
	}

	providerID := chatCtx.ProviderID
	if providerID == "" {
		// Service-first path: the user never named a provider, so assign
		// the first active one offering the service.
		provs := f.Catalog.ProvidersForService(chatCtx.ServiceID)
		if len(provs) == 0 {
			return nil, NewMissingSelectionError("provider")
		}
		providerID = provs[0].ID
	}

	bookingRecord, err := f.CreateBooking(ctx, models.CreateBookingRequest{
		TenantID:       f.TenantID,
		ConversationID: conversationID,
		ServiceID:      chatCtx.ServiceID,
		ProviderID:     providerID,
		Start:          chatCtx.SelectedSlot.Start,
		End:            chatCtx.SelectedSlot.End,
		CustomerName:   chatCtx.FullName,
		CustomerEmail:  chatCtx.Email,
		CustomerPhone:  chatCtx.Phone,
	})
	if err != nil {
		return nil, err
	}

	chatCtx.BookingID = bookingRecord.ID
	chatCtx.ProviderID = providerID
	chatCtx.Step = models.StepCompleted
	if err := f.Sessions.Set(ctx, conversationID, chatCtx); err != nil {
		return nil, fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return f.completedResult(conversationID, bookingRecord), nil
}

func (f *DefaultFinalizer) completedResult(conversationID string, bookingRecord *models.Booking) *models.TransitionResult {
	text := confirmedText
	if bookingRecord.Status == models.BookingPendingPayment {
		minutes := int(f.ReservationTTL / time.Minute)
		text = fmt.Sprintf(pendingPaymentText, minutes, "revisa tu correo para el enlace de pago")
	}
	return &models.TransitionResult{
		ConversationID: conversationID,
		NextStep:       models.StepCompleted,
		Message: models.Message{
			ID:        uuid.New().String(),
			Sender:    models.SenderAgent,
			Text:      text,
			Timestamp: time.Now(),
			Metadata: &models.MessageMetadata{
				Type:    "booking_confirmation",
				Booking: bookingRecord,
			},
		},
	}
}
