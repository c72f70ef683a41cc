package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"reservo/database/repository"
	"reservo/models"
	"reservo/services/catalog"
	"reservo/services/session"
)

// countingRepo records how many bookings were persisted.
type countingRepo struct {
	*repository.MemoryBookingRepo
	created int
}

func (r *countingRepo) Create(b *models.Booking) error {
	if err := r.MemoryBookingRepo.Create(b); err != nil {
		return err
	}
	r.created++
	return nil
}

type fakePayments struct {
	sessions int
	fail     bool
}

func (p *fakePayments) CreateSession(_ context.Context, b *models.Booking, amount float64) (*models.PaymentSession, error) {
	if p.fail {
		return nil, errors.New("gateway down")
	}
	p.sessions++
	return &models.PaymentSession{
		ID:        "cs_test",
		BookingID: b.ID,
		Amount:    amount,
		Status:    models.PaymentPending,
	}, nil
}

type fakeScheduler struct {
	scheduled []string
	delays    []time.Duration
}

func (s *fakeScheduler) ScheduleExpiry(bookingID string, delay time.Duration) error {
	s.scheduled = append(s.scheduled, bookingID)
	s.delays = append(s.delays, delay)
	return nil
}

func newTestFinalizer(t *testing.T) (*DefaultFinalizer, *countingRepo, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(30 * time.Minute)
	t.Cleanup(store.Close)

	repo := &countingRepo{MemoryBookingRepo: repository.NewMemoryBookingRepo()}
	return &DefaultFinalizer{
		Repo:     repo,
		Sessions: store,
		Catalog:  catalog.NewDefaultRepository(),
		Logger:   zap.NewNop(),
		TenantID: "demo",
	}, repo, store
}

func seedContext(t *testing.T, store *session.MemoryStore, chatCtx *models.ChatContext) {
	t.Helper()
	if err := store.Set(context.Background(), chatCtx.ConversationID, chatCtx); err != nil {
		t.Fatalf("seed context: %v", err)
	}
}

func completeContext(id string) *models.ChatContext {
	start := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	return &models.ChatContext{
		ConversationID: id,
		Step:           models.StepConfirmation,
		ServiceID:      "1",
		SelectedSlot:   &models.TimeSlot{Start: start, End: start.Add(time.Hour), ServiceID: "1"},
		FullName:       "María Pérez",
		Email:          "maria@example.com",
		Phone:          "+56911112222",
	}
}

func TestConfirmRejectsIncompleteContext(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.ChatContext)
		field  string
	}{
		{"no service", func(c *models.ChatContext) { c.ServiceID = "" }, "service"},
		{"no slot", func(c *models.ChatContext) { c.SelectedSlot = nil }, "time slot"},
		{"no email", func(c *models.ChatContext) { c.Email = "" }, "customer details"},
		{"no phone", func(c *models.ChatContext) { c.Phone = "" }, "customer details"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			finalizer, repo, store := newTestFinalizer(t)

			chatCtx := completeContext("conv-" + tc.name)
			tc.mutate(chatCtx)
			seedContext(t, store, chatCtx)

			_, err := finalizer.ConfirmFromConversation(context.Background(), chatCtx.ConversationID)
			var missing *MissingSelectionError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingSelectionError, got %v", err)
			}
			if missing.Field != tc.field {
				t.Errorf("missing field %q, want %q", missing.Field, tc.field)
			}
			if repo.created != 0 {
				t.Errorf("expected no persisted booking, got %d", repo.created)
			}
		})
	}
}

func TestConfirmFailsWhenNoProviderOffersService(t *testing.T) {
	finalizer, repo, store := newTestFinalizer(t)
	// A catalog where the selected service has no active provider.
	finalizer.Catalog = catalog.NewMemoryRepository(
		[]models.Service{{ID: "orphan", Name: "Sin Profesional", DurationMinutes: 30, Active: true}},
		nil,
	)

	chatCtx := completeContext("conv-orphan")
	chatCtx.ServiceID = "orphan"
	seedContext(t, store, chatCtx)

	_, err := finalizer.ConfirmFromConversation(context.Background(), chatCtx.ConversationID)
	var missing *MissingSelectionError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSelectionError, got %v", err)
	}
	if missing.Field != "provider" {
		t.Errorf("missing field %q, want %q", missing.Field, "provider")
	}
	if repo.created != 0 {
		t.Errorf("expected no persisted booking, got %d", repo.created)
	}
}

func TestConfirmDefaultsProviderFromCatalog(t *testing.T) {
	finalizer, _, store := newTestFinalizer(t)

	chatCtx := completeContext("conv-default-provider")
	chatCtx.ServiceID = "4" // Yoga Personal, performed only by p3
	chatCtx.SelectedSlot.ServiceID = "4"
	seedContext(t, store, chatCtx)

	result, err := finalizer.ConfirmFromConversation(context.Background(), chatCtx.ConversationID)
	if err != nil {
		t.Fatalf("ConfirmFromConversation: %v", err)
	}

	booked := result.Message.Metadata.Booking
	if booked.ProviderID != "p3" {
		t.Errorf("provider %q, want %q", booked.ProviderID, "p3")
	}
	if result.NextStep != models.StepCompleted {
		t.Errorf("step %s, want %s", result.NextStep, models.StepCompleted)
	}

	saved, err := store.Get(context.Background(), chatCtx.ConversationID)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if saved.BookingID != booked.ID {
		t.Errorf("context booking id %q, want %q", saved.BookingID, booked.ID)
	}
	if saved.Step != models.StepCompleted {
		t.Errorf("context step %s, want %s", saved.Step, models.StepCompleted)
	}
}

func TestConfirmIsIdempotentPerConversation(t *testing.T) {
	finalizer, repo, store := newTestFinalizer(t)

	chatCtx := completeContext("conv-idempotent")
	seedContext(t, store, chatCtx)

	first, err := finalizer.ConfirmFromConversation(context.Background(), chatCtx.ConversationID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	second, err := finalizer.ConfirmFromConversation(context.Background(), chatCtx.ConversationID)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	if repo.created != 1 {
		t.Fatalf("expected exactly 1 persisted booking, got %d", repo.created)
	}
	if first.Message.Metadata.Booking.ID != second.Message.Metadata.Booking.ID {
		t.Fatalf("repeat confirm produced a different booking: %s vs %s",
			first.Message.Metadata.Booking.ID, second.Message.Metadata.Booking.ID)
	}
}

func TestCreateBookingDerivesEndFromService(t *testing.T) {
	finalizer, _, _ := newTestFinalizer(t)

	start := time.Date(2025, 12, 5, 15, 0, 0, 0, time.UTC)
	booked, err := finalizer.CreateBooking(context.Background(), models.CreateBookingRequest{
		TenantID:      "demo",
		ServiceID:     "2", // 30-minute consult
		ProviderID:    "p1",
		Start:         start,
		CustomerName:  "María Pérez",
		CustomerEmail: "maria@example.com",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if want := start.Add(30 * time.Minute); !booked.End.Equal(want) {
		t.Errorf("end %v, want %v", booked.End, want)
	}
	if booked.Status != models.BookingConfirmed {
		t.Errorf("status %s, want %s", booked.Status, models.BookingConfirmed)
	}
	if booked.PaymentStatus != models.PaymentNone {
		t.Errorf("payment status %s, want %s", booked.PaymentStatus, models.PaymentNone)
	}
}

func TestCreateBookingPaymentHold(t *testing.T) {
	finalizer, _, _ := newTestFinalizer(t)
	payments := &fakePayments{}
	scheduler := &fakeScheduler{}
	finalizer.Payments = payments
	finalizer.Expiry = scheduler
	finalizer.RequirePayment = true
	finalizer.ReservationTTL = 15 * time.Minute

	booked, err := finalizer.CreateBooking(context.Background(), models.CreateBookingRequest{
		TenantID:      "demo",
		ServiceID:     "1",
		ProviderID:    "p2",
		Start:         time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC),
		CustomerName:  "María Pérez",
		CustomerEmail: "maria@example.com",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booked.Status != models.BookingPendingPayment {
		t.Errorf("status %s, want %s", booked.Status, models.BookingPendingPayment)
	}
	if booked.PaymentStatus != models.PaymentPending {
		t.Errorf("payment status %s, want %s", booked.PaymentStatus, models.PaymentPending)
	}
	if payments.sessions != 1 {
		t.Errorf("expected 1 payment session, got %d", payments.sessions)
	}
	if len(scheduler.scheduled) != 1 || scheduler.scheduled[0] != booked.ID {
		t.Errorf("expected expiry scheduled for %s, got %v", booked.ID, scheduler.scheduled)
	}
	if scheduler.delays[0] != 15*time.Minute {
		t.Errorf("expiry delay %v, want %v", scheduler.delays[0], 15*time.Minute)
	}
}

func TestCreateBookingSurvivesGatewayFailure(t *testing.T) {
	finalizer, repo, _ := newTestFinalizer(t)
	scheduler := &fakeScheduler{}
	finalizer.Payments = &fakePayments{fail: true}
	finalizer.Expiry = scheduler
	finalizer.RequirePayment = true
	finalizer.ReservationTTL = 15 * time.Minute

	booked, err := finalizer.CreateBooking(context.Background(), models.CreateBookingRequest{
		TenantID:      "demo",
		ServiceID:     "1",
		ProviderID:    "p2",
		Start:         time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC),
		CustomerName:  "María Pérez",
		CustomerEmail: "maria@example.com",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// The hold is kept; the expiry worker reclaims it if payment never lands.
	if repo.created != 1 {
		t.Fatalf("expected the hold persisted, got %d bookings", repo.created)
	}
	if len(scheduler.scheduled) != 1 || scheduler.scheduled[0] != booked.ID {
		t.Errorf("expected expiry scheduled despite gateway failure, got %v", scheduler.scheduled)
	}
}

func TestCreateBookingUnknownCatalogEntries(t *testing.T) {
	finalizer, repo, _ := newTestFinalizer(t)

	_, err := finalizer.CreateBooking(context.Background(), models.CreateBookingRequest{
		TenantID:   "demo",
		ServiceID:  "999",
		ProviderID: "p1",
		Start:      time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC),
	})
	var finalize *FinalizeError
	if !errors.As(err, &finalize) {
		t.Fatalf("expected FinalizeError, got %v", err)
	}
	if repo.created != 0 {
		t.Errorf("expected no persisted booking, got %d", repo.created)
	}
}
