package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reservo/models"
	"reservo/services/availability"
	"reservo/services/catalog"
	"reservo/services/session"
)

// DefaultEngine is the rule-based dialogue state machine. Each turn is
// matched against an ordered rule list; the first rule whose predicate
// holds produces the reply. A terminal fallback rule guarantees a reply
// for any input, so Transition only fails on session-store errors.
type DefaultEngine struct {
	Sessions session.Store
	Catalog  catalog.Repository
	Slots    *availability.Generator
	Logger   *zap.Logger

	rules []rule
}

// NewDefaultEngine wires the engine and freezes its rule order.
func NewDefaultEngine(sessions session.Store, cat catalog.Repository, slots *availability.Generator, logger *zap.Logger) *DefaultEngine {
	e := &DefaultEngine{
		Sessions: sessions,
		Catalog:  cat,
		Slots:    slots,
		Logger:   logger,
	}
	e.rules = e.buildRules()
	return e
}

// turn bundles the per-transition working state shared by rule predicates
// and handlers.
type turn struct {
	req     models.TransitionRequest
	raw     string // trimmed original text
	text    string // trimmed, lowercased
	chatCtx *models.ChatContext

	nextStep models.ConversationStep
	reply    string
	metadata *models.MessageMetadata
}

// Transition resolves the conversation, runs the first matching rule, and
// persists the updated context. A missing conversation id mints a fresh
// one; there is no shared fallback identity.
func (e *DefaultEngine) Transition(ctx context.Context, req models.TransitionRequest) (*models.TransitionResult, error) {
	raw := strings.TrimSpace(req.Text)

	conversationID := req.ConversationID
	var chatCtx *models.ChatContext
	if conversationID == "" {
		conversationID = uuid.New().String()
		chatCtx = &models.ChatContext{ConversationID: conversationID, CreatedAt: time.Now()}
	} else {
		loaded, err := e.Sessions.Get(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
		}
		chatCtx = loaded
		if chatCtx.ConversationID == "" {
			chatCtx.ConversationID = conversationID
			chatCtx.CreatedAt = time.Now()
		}
	}

	t := &turn{
		req:     req,
		raw:     raw,
		text:    strings.ToLower(raw),
		chatCtx: chatCtx,
	}

	matched := "fallback"
	for _, r := range e.rules {
		if r.when(t) {
			r.run(t)
			matched = r.name
			break
		}
	}

	chatCtx.Step = t.nextStep
	if err := e.Sessions.Set(ctx, conversationID, chatCtx); err != nil {
		return nil, fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	e.Logger.Debug("dialogue transition",
		zap.String("conversationId", conversationID),
		zap.String("rule", matched),
		zap.String("nextStep", string(t.nextStep)),
	)

	return &models.TransitionResult{
		ConversationID: conversationID,
		NextStep:       t.nextStep,
		Message: models.Message{
			ID:        uuid.New().String(),
			Sender:    models.SenderAgent,
			Text:      t.reply,
			Timestamp: time.Now(),
			Metadata:  t.metadata,
		},
	}, nil
}
