package models

import "time"

// BookingStatus tracks the lifecycle of a booking record.
type BookingStatus string

const (
	BookingPending        BookingStatus = "PENDING"
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT" // temporary hold awaiting payment
	BookingConfirmed      BookingStatus = "CONFIRMED"
	BookingCancelled      BookingStatus = "CANCELLED"
	BookingNoShow         BookingStatus = "NO_SHOW"
	BookingExpired        BookingStatus = "EXPIRED" // hold expired without payment
)

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentNone       PaymentStatus = "NONE"
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentPaid       PaymentStatus = "PAID"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Booking is a confirmed (or payment-pending) reservation record.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	TenantID      string        `bson:"tenantId" json:"tenantId"`
	ServiceID     string        `bson:"serviceId" json:"serviceId"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	Start         time.Time     `bson:"start" json:"start"`
	End           time.Time     `bson:"end" json:"end"`
	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	CustomerName  string        `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail string        `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone string        `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// CreateBookingRequest carries everything the finalizer needs to persist a booking.
type CreateBookingRequest struct {
	TenantID       string    `json:"tenantId"`
	ConversationID string    `json:"conversationId,omitempty"`
	ServiceID      string    `json:"serviceId"`
	ProviderID     string    `json:"providerId"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerPhone  string    `json:"customerPhone,omitempty"`
}

// PaymentSession is a checkout session created for a payment-pending booking.
type PaymentSession struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"bookingId"`
	Amount     float64       `json:"amount"`
	Currency   string        `json:"currency"`
	SessionURL string        `json:"sessionUrl,omitempty"`
	ExpiresAt  time.Time     `json:"expiresAt"`
	Status     PaymentStatus `json:"status"`
}
