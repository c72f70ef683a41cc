package chat

import (
	"context"

	"reservo/models"
	"reservo/services/booking"
	"reservo/services/catalog"
	"reservo/services/dialogue"
)

// LocalChatService satisfies ChatService without any network hop: the
// dialogue engine and the finalizer run in-process.
type LocalChatService struct {
	Engine    dialogue.Engine
	Finalizer booking.FinalizerService
	Catalog   catalog.Repository
	Settings  models.TenantSettings
}

func (s *LocalChatService) GetTenantSettings(_ context.Context, tenantID string) (*models.TenantSettings, error) {
	settings := s.Settings
	if settings.TenantID == "" {
		settings.TenantID = tenantID
	}
	return &settings, nil
}

func (s *LocalChatService) ListServices(_ context.Context, _ string) ([]models.Service, error) {
	return s.Catalog.ListServices(), nil
}

func (s *LocalChatService) SendMessage(ctx context.Context, req models.TransitionRequest) (*models.TransitionResult, error) {
	return s.Engine.Transition(ctx, req)
}

func (s *LocalChatService) ConfirmPendingBooking(ctx context.Context, _, conversationID string) (*models.TransitionResult, error) {
	return s.Finalizer.ConfirmFromConversation(ctx, conversationID)
}

func (s *LocalChatService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	return s.Finalizer.CreateBooking(ctx, req)
}
