package repository

import (
	"fmt"
	"sync"
	"time"

	"reservo/models"
)

// MemoryBookingRepo implements BookingRepository in-process. Used when the
// engine runs in local mode and in tests.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *MemoryBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("booking with id %s already exists", booking.ID)
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with id %s not found", id)
	}
	return &b, nil
}

func (r *MemoryBookingRepo) UpdateStatus(id string, status models.BookingStatus, payment models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	b.Status = status
	b.PaymentStatus = payment
	r.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepo) ListPendingPaymentBefore(cutoff int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	limit := time.Unix(cutoff, 0)
	for _, b := range r.bookings {
		if b.Status == models.BookingPendingPayment && b.CreatedAt.Before(limit) {
			out = append(out, b)
		}
	}
	return out, nil
}
