package models

import "time"

// MessageSender identifies who produced a chat message.
type MessageSender string

const (
	SenderUser   MessageSender = "USER"
	SenderAgent  MessageSender = "AGENT"
	SenderSystem MessageSender = "SYSTEM"
)

// Option is a selectable chip rendered alongside an agent message.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MessageMetadata carries the selectable payload of an agent message, if any.
// At most one of the list fields is populated per message.
type MessageMetadata struct {
	Type      string     `json:"type,omitempty"` // service_chips, provider_chips, time_slots, options_chips, booking_confirmation
	Services  []Service  `json:"services,omitempty"`
	Providers []Provider `json:"providers,omitempty"`
	TimeSlots []TimeSlot `json:"timeSlots,omitempty"`
	Options   []Option   `json:"options,omitempty"`
	Booking   *Booking   `json:"booking,omitempty"`
}

// Message is one immutable entry in a conversation's log.
type Message struct {
	ID        string           `json:"id"`
	Sender    MessageSender    `json:"sender"`
	Text      string           `json:"text"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}
