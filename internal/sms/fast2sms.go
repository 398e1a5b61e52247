package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cabzii/internal/domain"
	"cabzii/internal/utils"
)

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMS sends quick-route SMS through the Fast2SMS bulk API.
type Fast2SMS struct {
	APIKey string
	Client *http.Client
	URL    string
}

func NewFast2SMS(apiKey string) *Fast2SMS {
	return &Fast2SMS{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
		URL:    fast2smsURL,
	}
}

type fast2smsRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

// Send posts one message. The gateway expects the 10-digit local number.
func (s *Fast2SMS) Send(ctx context.Context, mobile, message string) error {
	payload := fast2smsRequest{
		Route:    "q",
		Message:  message,
		Language: "english",
		Numbers:  utils.LocalMobile(mobile),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.InternalError{Msg: "encode sms payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return domain.InternalError{Msg: "build sms request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return domain.UpstreamError{Service: "fast2sms", Err: err}
	}
	defer resp.Body.Close()

	var out fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.UpstreamError{Service: "fast2sms", Err: err}
	}
	if resp.StatusCode != http.StatusOK || !out.Return {
		return domain.UpstreamError{Service: "fast2sms", Err: fmt.Errorf("gateway refused: status=%d message=%v", resp.StatusCode, out.Message)}
	}
	return nil
}
