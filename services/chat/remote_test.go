package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reservo/config"
	"reservo/models"
)

// newBackend serves the JSON API surface the remote client expects.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/tenant/settings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TenantSettings{
			TenantID:        "demo",
			GreetingMessage: "Bienvenido",
		})
	})
	mux.HandleFunc("/api/chat/services", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Service{{ID: "1", Name: "Masaje Relajante"}})
	})
	mux.HandleFunc("/api/chat/message", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("message endpoint hit with %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization header %q", got)
		}
		var req models.TransitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode transition request: %v", err)
		}
		json.NewEncoder(w).Encode(models.TransitionResult{
			ConversationID: "c1",
			NextStep:       models.StepOptionsSelection,
			Message: models.Message{
				ID:        "m1",
				Sender:    models.SenderAgent,
				Text:      "echo: " + req.Text,
				Timestamp: time.Now(),
			},
		})
	})
	mux.HandleFunc("/api/chat/confirm", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode confirm body: %v", err)
		}
		json.NewEncoder(w).Encode(models.TransitionResult{
			ConversationID: body["conversationId"],
			NextStep:       models.StepCompleted,
			Message: models.Message{
				ID:     "m2",
				Sender: models.SenderAgent,
				Metadata: &models.MessageMetadata{
					Type:    "booking_confirmation",
					Booking: &models.Booking{ID: "b1", Status: models.BookingConfirmed},
				},
			},
		})
	})
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode booking request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Booking{
			ID:        "b2",
			ServiceID: req.ServiceID,
			Status:    models.BookingConfirmed,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteChatServiceRoundTrips(t *testing.T) {
	srv := newBackend(t)
	remote := NewRemoteChatService(srv.URL+"/", "tok")
	ctx := context.Background()

	settings, err := remote.GetTenantSettings(ctx, "demo")
	if err != nil {
		t.Fatalf("GetTenantSettings: %v", err)
	}
	if settings.GreetingMessage != "Bienvenido" {
		t.Errorf("greeting %q", settings.GreetingMessage)
	}

	services, err := remote.ListServices(ctx, "demo")
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 1 || services[0].ID != "1" {
		t.Errorf("services %+v", services)
	}

	result, err := remote.SendMessage(ctx, models.TransitionRequest{TenantID: "demo", Text: "hola"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if result.ConversationID != "c1" || result.Message.Text != "echo: hola" {
		t.Errorf("transition result %+v", result)
	}

	confirmed, err := remote.ConfirmPendingBooking(ctx, "demo", "c1")
	if err != nil {
		t.Fatalf("ConfirmPendingBooking: %v", err)
	}
	if confirmed.ConversationID != "c1" || confirmed.NextStep != models.StepCompleted {
		t.Errorf("confirm result %+v", confirmed)
	}
	if confirmed.Message.Metadata == nil || confirmed.Message.Metadata.Booking.ID != "b1" {
		t.Errorf("confirm metadata %+v", confirmed.Message.Metadata)
	}

	created, err := remote.CreateBooking(ctx, models.CreateBookingRequest{TenantID: "demo", ServiceID: "1"})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if created.ID != "b2" || created.ServiceID != "1" {
		t.Errorf("created booking %+v", created)
	}
}

func TestRemoteChatServiceSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	remote := NewRemoteChatService(srv.URL, "")

	if _, err := remote.SendMessage(context.Background(), models.TransitionRequest{Text: "hola"}); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if _, err := remote.GetTenantSettings(context.Background(), "demo"); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestFactorySelectsBackendByEngineMode(t *testing.T) {
	saved := config.AppConfig
	t.Cleanup(func() { config.AppConfig = saved })

	config.AppConfig.EngineMode = "remote"
	config.AppConfig.APIBaseURL = "http://reservo.test/"
	svc := NewChatService(nil, nil, nil)
	remote, ok := svc.(*RemoteChatService)
	if !ok {
		t.Fatalf("expected RemoteChatService, got %T", svc)
	}
	if remote.BaseURL != "http://reservo.test" {
		t.Errorf("base url %q, want trailing slash trimmed", remote.BaseURL)
	}

	config.AppConfig.EngineMode = "local"
	config.AppConfig.TenantID = "demo"
	svc = NewChatService(nil, nil, nil)
	local, ok := svc.(*LocalChatService)
	if !ok {
		t.Fatalf("expected LocalChatService, got %T", svc)
	}
	if local.Settings.TenantID != "demo" {
		t.Errorf("local settings tenant %q", local.Settings.TenantID)
	}
}
