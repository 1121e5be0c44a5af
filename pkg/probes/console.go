package probes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hooklinehq/hookline/pkg/core"
)

const webhookTestEvent = "test_webhook"

// WebhookTestResult reports one operator-initiated probe of a webhook URL.
type WebhookTestResult struct {
	Success        bool   `json:"success"`
	StatusCode     int    `json:"status_code,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	ResponseBody   string `json:"response_body,omitempty"`
	Error          string `json:"error,omitempty"`
	Hint           string `json:"hint,omitempty"`
}

// Console sends synthetic test deliveries so operators can check a webhook
// end to end before pointing real traffic at it.
type Console struct {
	http    core.HTTPContext
	timeout time.Duration
}

func NewConsole(httpCtx core.HTTPContext, timeout time.Duration) *Console {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Console{http: httpCtx, timeout: timeout}
}

// TestWebhook POSTs a synthetic payload to the webhook URL and reports
// latency and status. The request is deliberately unsigned so it exercises
// the unsigned delivery path; the X-Webhook-Event header marks it as a test.
// Transport failures are reported separately from HTTP failures because they
// may be environmental (proxy, DNS, firewall) rather than a broken endpoint.
func (c *Console) TestWebhook(ctx context.Context, url string) WebhookTestResult {
	payload, err := json.Marshal(map[string]any{
		"event": webhookTestEvent,
		"data": map[string]any{
			"message": "This is a test delivery from the webhook console",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return WebhookTestResult{Error: fmt.Sprintf("failed to build test payload: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return WebhookTestResult{Error: fmt.Sprintf("invalid webhook URL: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", webhookTestEvent)

	started := time.Now()
	res, err := c.http.Do(req)
	elapsed := time.Since(started).Milliseconds()

	if err != nil {
		return WebhookTestResult{
			ResponseTimeMs: elapsed,
			Error:          err.Error(),
			Hint:           "The request never reached the endpoint. This can be a network or proxy restriction rather than a problem with the webhook itself.",
		}
	}
	defer res.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(res.Body, 4096))
	if readErr != nil {
		body = nil
	}

	result := WebhookTestResult{
		Success:        res.StatusCode >= 200 && res.StatusCode < 300,
		StatusCode:     res.StatusCode,
		ResponseTimeMs: elapsed,
		ResponseBody:   string(body),
	}

	if !result.Success {
		result.Error = fmt.Sprintf("webhook responded with status %d", res.StatusCode)
	}

	return result
}
