package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reservo/models"
	"reservo/services/booking"
)

// Default user-visible copy; overridable per tenant through Config.Messages.
const (
	defaultGreeting        = "¡Hola! 👋 ¿En qué puedo ayudarte?"
	defaultErrorConnection = "Error de conexión. Por favor, intenta de nuevo."
	defaultBookingSuccess  = "✅ ¡Reserva confirmada! Te enviamos un email de confirmación."
	defaultBookingError    = "Error al crear la reserva. Por favor, intenta de nuevo."
	defaultConfirmError    = "Error al confirmar. Por favor intenta nuevamente."
)

// Callbacks notify the embedding page about orchestrator events. All are
// optional.
type Callbacks struct {
	OnReady          func()
	OnOpen           func()
	OnClose          func()
	OnBookingCreated func(*models.Booking)
	OnError          func(*ChatError)
}

// Messages overrides the stock user-visible copy.
type Messages struct {
	Greeting        string
	ErrorConnection string
	BookingSuccess  string
	BookingError    string
}

// Config is the orchestrator's opaque configuration: tenant identity,
// locale copy, user context, callbacks.
type Config struct {
	TenantID    string
	AutoOpen    bool
	UserContext *models.UserContext
	Messages    Messages
	Callbacks   Callbacks
}

// State is a renderable snapshot of the conversation.
type State struct {
	IsOpen         bool
	IsInitialized  bool
	IsLoading      bool
	ConversationID string
	CurrentStep    models.ConversationStep
	Messages       []models.Message

	SelectedService  *models.Service
	SelectedProvider *models.Provider
	SelectedTimeSlot *models.TimeSlot

	AvailableServices  []models.Service
	AvailableProviders []models.Provider
	AvailableTimeSlots []models.TimeSlot
}

// Orchestrator owns the visible message log and transient UI state, feeds
// user actions through the ChatService, and reconciles the machine's
// replies back into renderable form. The selected-entity cache here is a
// denormalized view for rendering and for assembling explicit booking
// calls; the dialogue context remains the source of truth for
// conversation-driven confirmation.
type Orchestrator struct {
	api    ChatService
	cfg    Config
	logger *zap.Logger

	mu            sync.Mutex
	isOpen        bool
	isInitialized bool
	isLoading     bool
	destroyed     bool
	epoch         uint64 // bumped on Close/Destroy; stale responses compare against it

	conversationID string
	currentStep    models.ConversationStep
	messages       []models.Message

	selectedService  *models.Service
	selectedProvider *models.Provider
	selectedSlot     *models.TimeSlot

	availableServices  []models.Service
	availableProviders []models.Provider
	availableSlots     []models.TimeSlot
}

func NewOrchestrator(api ChatService, cfg Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		api:         api,
		cfg:         cfg,
		logger:      logger,
		isOpen:      cfg.AutoOpen,
		currentStep: models.StepGreeting,
	}
}

// appendMessage adds one immutable entry to the log. Callers hold the lock.
func (o *Orchestrator) appendMessage(text string, sender models.MessageSender, metadata *models.MessageMetadata) models.Message {
	msg := models.Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
	o.messages = append(o.messages, msg)
	return msg
}

func (o *Orchestrator) notifyError(chatErr *ChatError) {
	o.logger.Warn("orchestrator error",
		zap.String("code", chatErr.Code), zap.Error(chatErr.Err))
	if o.cfg.Callbacks.OnError != nil {
		o.cfg.Callbacks.OnError(chatErr)
	}
}

// Initialize loads tenant settings and the service catalog, then seeds the
// greeting. When the backend is unreachable it degrades to the local
// default greeting so the widget stays usable offline.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	greeting := o.cfg.Messages.Greeting

	settings, err := o.api.GetTenantSettings(ctx, o.cfg.TenantID)
	if err == nil && greeting == "" {
		greeting = settings.GreetingMessage
	}
	if greeting == "" {
		greeting = defaultGreeting
	}

	var services []models.Service
	if err == nil {
		services, err = o.api.ListServices(ctx, o.cfg.TenantID)
	}

	o.mu.Lock()
	if o.destroyed {
		o.mu.Unlock()
		return nil
	}
	o.appendMessage(greeting, models.SenderAgent, nil)
	o.availableServices = services
	o.isInitialized = true
	o.mu.Unlock()

	if o.cfg.Callbacks.OnReady != nil {
		o.cfg.Callbacks.OnReady()
	}

	if err != nil {
		o.notifyError(newChatError(CodeInit, "backend not available - running in offline mode", err))
	}
	return nil
}

// SendMessage appends the user's turn, runs one transition, and appends
// the agent's reply. While a transition is outstanding the loading gate
// rejects further input. Transport failure surfaces a system message and
// leaves the conversation in its last known good state.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) (*models.TransitionResult, error) {
	o.mu.Lock()
	if o.destroyed {
		o.mu.Unlock()
		return nil, nil
	}
	if o.isLoading {
		o.mu.Unlock()
		return nil, fmt.Errorf("a transition is already in flight")
	}
	o.isLoading = true
	o.appendMessage(text, models.SenderUser, nil)
	conversationID := o.conversationID
	epoch := o.epoch
	o.mu.Unlock()

	result, err := o.api.SendMessage(ctx, models.TransitionRequest{
		TenantID:       o.cfg.TenantID,
		ConversationID: conversationID,
		Text:           text,
		UserContext:    o.cfg.UserContext,
	})

	o.mu.Lock()
	o.isLoading = false
	if o.destroyed || o.epoch != epoch {
		// The transition completed against the session store; only its
		// delivery into the torn-down UI is dropped.
		o.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		errText := o.cfg.Messages.ErrorConnection
		if errText == "" {
			errText = defaultErrorConnection
		}
		o.appendMessage(errText, models.SenderSystem, nil)
		o.mu.Unlock()
		o.notifyError(newChatError(CodeSendMessage, err.Error(), err))
		return nil, err
	}

	o.appendMessage(result.Message.Text, models.SenderAgent, result.Message.Metadata)
	o.conversationID = result.ConversationID
	o.currentStep = result.NextStep

	// Reset option caches when the reply carries none, so stale chips
	// never outlive the step that offered them.
	o.availableServices = nil
	o.availableProviders = nil
	o.availableSlots = nil
	if meta := result.Message.Metadata; meta != nil {
		o.availableServices = meta.Services
		o.availableProviders = meta.Providers
		o.availableSlots = meta.TimeSlots
	}
	o.mu.Unlock()

	return result, nil
}

// SelectService forwards the selection as its canonical phrase, so chip
// taps and typed text share one code path through the state machine.
func (o *Orchestrator) SelectService(ctx context.Context, service models.Service) error {
	result, err := o.SendMessage(ctx, "Selecciono: "+service.Name)
	if err != nil || result == nil {
		// nil result without error: the reply was discarded by a
		// close/destroy, so the cache must not move either.
		return err
	}
	o.mu.Lock()
	o.selectedService = &service
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) SelectProvider(ctx context.Context, provider models.Provider) error {
	result, err := o.SendMessage(ctx, "Prefiero con: "+provider.Name)
	if err != nil || result == nil {
		return err
	}
	o.mu.Lock()
	o.selectedProvider = &provider
	o.mu.Unlock()
	return nil
}

// SelectTimeSlot embeds the slot start as RFC 3339 so the engine can pin
// the exact slot back against its offered list.
func (o *Orchestrator) SelectTimeSlot(ctx context.Context, slot models.TimeSlot) error {
	result, err := o.SendMessage(ctx, "Reservo para: "+slot.Start.Format(time.RFC3339))
	if err != nil || result == nil {
		return err
	}
	o.mu.Lock()
	o.selectedSlot = &slot
	o.mu.Unlock()
	return nil
}

// SelectOption maps an option chip to its canonical phrase. The confirm
// action bypasses the generic message path: confirmation must trigger the
// booking side effect, not another prompt.
func (o *Orchestrator) SelectOption(ctx context.Context, value string) error {
	if value == "confirm" {
		return o.confirmPending(ctx)
	}

	text := value
	switch value {
	case "services":
		text = "Ver Servicios"
	case "providers":
		text = "Ver Profesionales"
	case "retry":
		text = "Corregir"
	case "restart":
		text = "Agendar otra hora"
	}
	_, err := o.SendMessage(ctx, text)
	return err
}

func (o *Orchestrator) confirmPending(ctx context.Context) error {
	o.mu.Lock()
	if o.destroyed {
		o.mu.Unlock()
		return nil
	}
	if o.isLoading {
		o.mu.Unlock()
		return fmt.Errorf("a transition is already in flight")
	}
	o.isLoading = true
	o.appendMessage("Sí, confirmar", models.SenderUser, nil)
	conversationID := o.conversationID
	epoch := o.epoch
	o.mu.Unlock()

	result, err := o.api.ConfirmPendingBooking(ctx, o.cfg.TenantID, conversationID)

	o.mu.Lock()
	o.isLoading = false
	if o.destroyed || o.epoch != epoch {
		o.mu.Unlock()
		return nil
	}
	if err != nil {
		o.appendMessage(defaultConfirmError, models.SenderSystem, nil)
		o.mu.Unlock()
		o.notifyError(newChatError(CodeConfirmBooking, err.Error(), err))
		return err
	}

	o.appendMessage(result.Message.Text, models.SenderAgent, result.Message.Metadata)
	o.conversationID = result.ConversationID
	o.currentStep = result.NextStep

	var created *models.Booking
	if result.Message.Metadata != nil {
		created = result.Message.Metadata.Booking
	}
	o.mu.Unlock()

	if created != nil && o.cfg.Callbacks.OnBookingCreated != nil {
		o.cfg.Callbacks.OnBookingCreated(created)
	}
	return nil
}

// CreateBooking assembles an explicit booking call from the local
// selection cache. Absent selections surface as a user-visible failure
// without touching the dialogue state.
func (o *Orchestrator) CreateBooking(ctx context.Context, customerName, customerEmail, customerPhone string) (*models.Booking, error) {
	o.mu.Lock()
	var missingField string
	switch {
	case o.selectedService == nil:
		missingField = "service"
	case o.selectedProvider == nil:
		missingField = "provider"
	case o.selectedSlot == nil:
		missingField = "time slot"
	}
	if missingField != "" {
		errText := o.cfg.Messages.BookingError
		if errText == "" {
			errText = defaultBookingError
		}
		o.appendMessage(errText, models.SenderSystem, nil)
		o.mu.Unlock()
		err := booking.NewMissingSelectionError(missingField)
		o.notifyError(newChatError(CodeCreateBooking, err.Error(), err))
		return nil, err
	}
	o.isLoading = true
	req := models.CreateBookingRequest{
		TenantID:       o.cfg.TenantID,
		ConversationID: o.conversationID,
		ServiceID:      o.selectedService.ID,
		ProviderID:     o.selectedProvider.ID,
		Start:          o.selectedSlot.Start,
		End:            o.selectedSlot.End,
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		CustomerPhone:  customerPhone,
	}
	epoch := o.epoch
	o.mu.Unlock()

	created, err := o.api.CreateBooking(ctx, req)

	o.mu.Lock()
	o.isLoading = false
	if o.destroyed || o.epoch != epoch {
		o.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		errText := o.cfg.Messages.BookingError
		if errText == "" {
			errText = defaultBookingError
		}
		o.appendMessage(errText, models.SenderSystem, nil)
		o.mu.Unlock()
		o.notifyError(newChatError(CodeCreateBooking, err.Error(), err))
		return nil, err
	}

	successText := o.cfg.Messages.BookingSuccess
	if successText == "" {
		successText = defaultBookingSuccess
	}
	o.appendMessage(successText, models.SenderSystem, &models.MessageMetadata{
		Type:    "booking_confirmation",
		Booking: created,
	})
	o.currentStep = models.StepCompleted
	o.mu.Unlock()

	if o.cfg.Callbacks.OnBookingCreated != nil {
		o.cfg.Callbacks.OnBookingCreated(created)
	}
	return created, nil
}

// Open shows the widget; it never touches the state machine.
func (o *Orchestrator) Open() {
	o.mu.Lock()
	o.isOpen = true
	o.mu.Unlock()
	if o.cfg.Callbacks.OnOpen != nil {
		o.cfg.Callbacks.OnOpen()
	}
}

// Close hides the widget. Responses still in flight at close time are
// discarded; the conversation itself stays intact in the session store.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.isOpen = false
	o.epoch++
	o.mu.Unlock()
	if o.cfg.Callbacks.OnClose != nil {
		o.cfg.Callbacks.OnClose()
	}
}

func (o *Orchestrator) Toggle() {
	o.mu.Lock()
	willOpen := !o.isOpen
	o.isOpen = willOpen
	if !willOpen {
		o.epoch++
	}
	o.mu.Unlock()
	if willOpen {
		if o.cfg.Callbacks.OnOpen != nil {
			o.cfg.Callbacks.OnOpen()
		}
	} else if o.cfg.Callbacks.OnClose != nil {
		o.cfg.Callbacks.OnClose()
	}
}

// Destroy tears the widget down. In-flight transitions complete against
// the session store but their responses are discarded.
func (o *Orchestrator) Destroy() {
	o.mu.Lock()
	o.destroyed = true
	o.isOpen = false
	o.epoch++
	o.mu.Unlock()
}

// State returns a renderable snapshot. The message slice is copied; the
// entries themselves are immutable.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	msgs := make([]models.Message, len(o.messages))
	copy(msgs, o.messages)

	return State{
		IsOpen:             o.isOpen,
		IsInitialized:      o.isInitialized,
		IsLoading:          o.isLoading,
		ConversationID:     o.conversationID,
		CurrentStep:        o.currentStep,
		Messages:           msgs,
		SelectedService:    o.selectedService,
		SelectedProvider:   o.selectedProvider,
		SelectedTimeSlot:   o.selectedSlot,
		AvailableServices:  o.availableServices,
		AvailableProviders: o.availableProviders,
		AvailableTimeSlots: o.availableSlots,
	}
}
