// database/repository/booking.go
package repository

import "reservo/models"

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	Create(booking *models.Booking) error
	UpdateStatus(id string, status models.BookingStatus, payment models.PaymentStatus) error
	// ListPendingPaymentBefore returns payment-pending bookings created
	// before the cutoff, for reservation expiry.
	ListPendingPaymentBefore(cutoff int64) ([]models.Booking, error)
}
