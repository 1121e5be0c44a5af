package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hooklinehq/hookline/pkg/core"
)

// TriggerPayload is the structured event handed to the automation executor
// when a webhook delivery is accepted.
type TriggerPayload struct {
	Source    string            `json:"source"`
	WebhookID string            `json:"webhook_id"`
	Payload   json.RawMessage   `json:"payload"`
	Headers   map[string]string `json:"headers"`
	Timestamp time.Time         `json:"timestamp"`
}

// Executor runs an automation in response to a trigger. The execution engine
// itself is an external collaborator; hookline only hands the trigger over
// and reports the result. Retries, if any, are the executor's concern.
type Executor interface {
	Execute(ctx context.Context, trigger TriggerPayload) (executionID string, err error)
}

// HTTP forwards triggers to a remote execution engine.
type HTTP struct {
	URL     string
	http    core.HTTPContext
	timeout time.Duration
}

func NewHTTP(url string, httpCtx core.HTTPContext, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTP{URL: url, http: httpCtx, timeout: timeout}
}

func (e *HTTP) Execute(ctx context.Context, trigger TriggerPayload) (string, error) {
	body, err := json.Marshal(trigger)
	if err != nil {
		return "", fmt.Errorf("failed to encode trigger payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build executor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach executor: %w", err)
	}
	defer res.Body.Close()

	responseBody, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("executor returned status %d: %s", res.StatusCode, string(responseBody))
	}

	var response struct {
		ExecutionID string `json:"execution_id"`
	}
	if err := json.Unmarshal(responseBody, &response); err != nil || response.ExecutionID == "" {
		// Executor accepted the trigger but did not return an ID.
		return uuid.NewString(), nil
	}

	return response.ExecutionID, nil
}

// Noop accepts every trigger without running anything. Used when no executor
// URL is configured, so webhook plumbing can be exercised on its own.
type Noop struct{}

func (Noop) Execute(_ context.Context, trigger TriggerPayload) (string, error) {
	executionID := uuid.NewString()
	log.Infof("accepted trigger for webhook %s without an executor, execution %s", trigger.WebhookID, executionID)
	return executionID, nil
}
