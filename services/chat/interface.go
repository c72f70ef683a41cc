package chat

import (
	"context"

	"reservo/models"
)

// ChatService is the transport abstraction the orchestrator talks to. The
// local implementation runs the dialogue engine in-process; the remote one
// calls a reservo server over HTTP. The contract is identical either way,
// selected by configuration.
type ChatService interface {
	GetTenantSettings(ctx context.Context, tenantID string) (*models.TenantSettings, error)
	ListServices(ctx context.Context, tenantID string) ([]models.Service, error)
	SendMessage(ctx context.Context, req models.TransitionRequest) (*models.TransitionResult, error)
	ConfirmPendingBooking(ctx context.Context, tenantID, conversationID string) (*models.TransitionResult, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
}
