package chat

import (
	"reservo/config"
	"reservo/models"
	"reservo/services/booking"
	"reservo/services/catalog"
	"reservo/services/dialogue"
)

// NewChatService selects the orchestrator-facing backend per ENGINE_MODE.
// "remote" talks to a reservo server at API_BASE_URL; anything else runs
// the engine and finalizer in-process.
func NewChatService(engine dialogue.Engine, finalizer booking.FinalizerService, cat catalog.Repository) ChatService {
	cfg := config.AppConfig
	if cfg.EngineMode == "remote" {
		return NewRemoteChatService(cfg.APIBaseURL, "")
	}
	return &LocalChatService{
		Engine:    engine,
		Finalizer: finalizer,
		Catalog:   cat,
		Settings: models.TenantSettings{
			TenantID:        cfg.TenantID,
			Name:            cfg.TenantName,
			Language:        cfg.Language,
			PrimaryColor:    cfg.PrimaryColor,
			GreetingMessage: cfg.GreetingMessage,
		},
	}
}
