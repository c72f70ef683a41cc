package models

// UserContext is optional caller-supplied identity attached to a transition.
type UserContext struct {
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// TransitionRequest is one user turn fed to the dialogue engine.
type TransitionRequest struct {
	TenantID       string       `json:"tenantId"`
	ConversationID string       `json:"conversationId,omitempty"`
	Text           string       `json:"text" binding:"required"`
	UserContext    *UserContext `json:"userContext,omitempty"`
}

// TransitionResult is the engine's reply for a single turn.
type TransitionResult struct {
	ConversationID string           `json:"conversationId"`
	NextStep       ConversationStep `json:"nextStep"`
	Message        Message          `json:"message"`
}

// TenantSettings is the widget-facing tenant configuration.
type TenantSettings struct {
	TenantID        string `json:"tenantId"`
	Name            string `json:"name,omitempty"`
	Language        string `json:"language"`
	PrimaryColor    string `json:"primaryColor,omitempty"`
	GreetingMessage string `json:"greetingMessage"`
}
