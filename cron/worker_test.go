package cron

import (
	"testing"
	"time"

	"reservo/database/repository"
	"reservo/models"
)

func seedBooking(t *testing.T, repo *repository.MemoryBookingRepo, id string, status models.BookingStatus, age time.Duration) {
	t.Helper()
	err := repo.Create(&models.Booking{
		ID:            id,
		TenantID:      "demo",
		ServiceID:     "1",
		ProviderID:    "p1",
		Status:        status,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     time.Now().Add(-age),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestReclaimStaleHolds(t *testing.T) {
	repo := repository.NewMemoryBookingRepo()
	seedBooking(t, repo, "stale", models.BookingPendingPayment, time.Hour)
	seedBooking(t, repo, "fresh", models.BookingPendingPayment, time.Minute)
	seedBooking(t, repo, "paid", models.BookingConfirmed, time.Hour)

	reclaimStaleHolds(repo, 15*time.Minute)

	cases := []struct {
		id   string
		want models.BookingStatus
	}{
		{"stale", models.BookingExpired},
		{"fresh", models.BookingPendingPayment},
		{"paid", models.BookingConfirmed},
	}
	for _, tc := range cases {
		b, err := repo.GetByID(tc.id)
		if err != nil {
			t.Fatalf("GetByID(%s): %v", tc.id, err)
		}
		if b.Status != tc.want {
			t.Errorf("booking %s status %s, want %s", tc.id, b.Status, tc.want)
		}
	}

	stale, _ := repo.GetByID("stale")
	if stale.PaymentStatus != models.PaymentFailed {
		t.Errorf("stale payment status %s, want %s", stale.PaymentStatus, models.PaymentFailed)
	}
}
