package session

import (
	"context"

	"reservo/models"
)

// Store keeps per-conversation dialogue context. Single writer per
// conversation id; last write wins. A Get for an unknown id returns an
// empty context rather than an error so callers never special-case first
// contact.
type Store interface {
	Get(ctx context.Context, conversationID string) (*models.ChatContext, error)
	Set(ctx context.Context, conversationID string, chatCtx *models.ChatContext) error
	Delete(ctx context.Context, conversationID string) error
}
