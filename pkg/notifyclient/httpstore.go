package notifyclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPStore talks to the notification REST API with a bearer token.
type HTTPStore struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type listResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
}

type unreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

func (s *HTTPStore) List(ctx context.Context) ([]Notification, int64, error) {
	var list listResponse
	if err := s.do(ctx, http.MethodGet, "/api/v1/notifications", &list); err != nil {
		return nil, 0, err
	}

	var count unreadCountResponse
	if err := s.do(ctx, http.MethodGet, "/api/v1/notifications/unread-count", &count); err != nil {
		return nil, 0, err
	}

	return list.Notifications, count.UnreadCount, nil
}

func (s *HTTPStore) MarkRead(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodPut, "/api/v1/notifications/"+id+"/read", nil)
}

func (s *HTTPStore) MarkAllRead(ctx context.Context) error {
	return s.do(ctx, http.MethodPut, "/api/v1/notifications/read-all", nil)
}

func (s *HTTPStore) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
