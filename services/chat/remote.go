package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reservo/models"
)

const defaultHTTPTimeout = 15 * time.Second

// RemoteChatService implements ChatService against a reservo server's JSON
// API. Request timeouts live on the embedded http.Client; callers may
// tighten them further per call through the context.
type RemoteChatService struct {
	BaseURL     string
	WidgetToken string
	HTTPClient  *http.Client
}

func NewRemoteChatService(baseURL, widgetToken string) *RemoteChatService {
	return &RemoteChatService{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		WidgetToken: widgetToken,
		HTTPClient:  &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (s *RemoteChatService) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.WidgetToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.WidgetToken)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (s *RemoteChatService) GetTenantSettings(ctx context.Context, tenantID string) (*models.TenantSettings, error) {
	var settings models.TenantSettings
	if err := s.do(ctx, http.MethodGet, "/api/tenant/settings", nil, &settings); err != nil {
		return nil, err
	}
	if settings.TenantID == "" {
		settings.TenantID = tenantID
	}
	return &settings, nil
}

func (s *RemoteChatService) ListServices(ctx context.Context, _ string) ([]models.Service, error) {
	var services []models.Service
	if err := s.do(ctx, http.MethodGet, "/api/chat/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *RemoteChatService) SendMessage(ctx context.Context, req models.TransitionRequest) (*models.TransitionResult, error) {
	var result models.TransitionResult
	if err := s.do(ctx, http.MethodPost, "/api/chat/message", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RemoteChatService) ConfirmPendingBooking(ctx context.Context, tenantID, conversationID string) (*models.TransitionResult, error) {
	body := map[string]string{"tenantId": tenantID, "conversationId": conversationID}
	var result models.TransitionResult
	if err := s.do(ctx, http.MethodPost, "/api/chat/confirm", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RemoteChatService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	var bookingRecord models.Booking
	if err := s.do(ctx, http.MethodPost, "/api/bookings", req, &bookingRecord); err != nil {
		return nil, err
	}
	return &bookingRecord, nil
}
