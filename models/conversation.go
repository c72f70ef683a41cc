package models

import "time"

// ConversationStep enumerates the dialogue states. The funnel runs
// GREETING -> OPTIONS_SELECTION -> {SERVICE|PROVIDER}_SELECTION ->
// TIME_SELECTION -> ASK_NAME .. ASK_PHONE -> CONFIRM_DETAILS ->
// CONFIRMATION -> COMPLETED, with a retry edge from CONFIRM_DETAILS back
// to ASK_NAME.
type ConversationStep string

const (
	StepGreeting          ConversationStep = "GREETING"
	StepOptionsSelection  ConversationStep = "OPTIONS_SELECTION"
	StepServiceSelection  ConversationStep = "SERVICE_SELECTION"
	StepProviderSelection ConversationStep = "PROVIDER_SELECTION"
	StepTimeSelection     ConversationStep = "TIME_SELECTION"
	StepAskName           ConversationStep = "ASK_NAME"
	StepAskSurname        ConversationStep = "ASK_SURNAME"
	StepAskEmail          ConversationStep = "ASK_EMAIL"
	StepAskPhone          ConversationStep = "ASK_PHONE"
	StepConfirmDetails    ConversationStep = "CONFIRM_DETAILS"
	StepConfirmation      ConversationStep = "CONFIRMATION"
	StepCompleted         ConversationStep = "COMPLETED"
)

// ChatContext is the per-conversation state accumulated by the dialogue
// engine. It is the single source of truth for the booking finalizer; the
// orchestrator keeps only a denormalized view for rendering.
type ChatContext struct {
	ConversationID string           `json:"conversationId"`
	Step           ConversationStep `json:"step,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`

	ServiceID  string `json:"serviceId,omitempty"`
	ProviderID string `json:"providerId,omitempty"`

	// Slots offered at TIME_SELECTION; the selected one is pinned when the
	// user's reply can be matched back against this list.
	OfferedSlots     []TimeSlot `json:"offeredSlots,omitempty"`
	SelectedSlot     *TimeSlot  `json:"selectedSlot,omitempty"`
	SelectedTimeText string     `json:"selectedTimeText,omitempty"`

	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`

	// Set once a booking has been materialized from this conversation.
	BookingID string `json:"bookingId,omitempty"`
}

// ClearContact drops the collected customer fields. Used when the user
// rejects the confirmation summary and the collection sequence restarts.
func (c *ChatContext) ClearContact() {
	c.Name = ""
	c.Surname = ""
	c.FullName = ""
	c.Email = ""
	c.Phone = ""
}
