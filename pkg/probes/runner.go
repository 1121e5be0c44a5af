package probes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hooklinehq/hookline/pkg/core"
	"github.com/hooklinehq/hookline/pkg/platforms"
)

const (
	// DefaultTimeout bounds every outbound probe. A call that does not
	// answer in time is aborted and classified as a timeout.
	DefaultTimeout = 10 * time.Second

	responsePreviewLimit = 256
)

// ConfigSource looks up dynamically stored platform configurations. A stored
// configuration takes precedence over the built-in registry.
type ConfigSource interface {
	FindPlatformConfig(ctx context.Context, name string) (*platforms.Config, error)
}

// InsightSink persists credential test outcomes for analytics. Sink failures
// are logged and swallowed; they never affect the probe result.
type InsightSink interface {
	Record(platformName string, success bool, errorType ErrorType, details map[string]any) error
}

// Outcome is the structured result of one credential test. Failed probes are
// reported through Success=false, never as returned errors.
type Outcome struct {
	Success          bool           `json:"success"`
	UserMessage      string         `json:"user_message"`
	TechnicalDetails map[string]any `json:"technical_details"`
}

// Runner executes credential tests: normalize, resolve auth, probe the
// platform with a bounded timeout, classify the response.
type Runner struct {
	http     core.HTTPContext
	configs  ConfigSource
	insights InsightSink
	timeout  time.Duration
}

func NewRunner(httpCtx core.HTTPContext, configs ConfigSource, insights InsightSink, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Runner{
		http:     httpCtx,
		configs:  configs,
		insights: insights,
		timeout:  timeout,
	}
}

func (r *Runner) Run(ctx context.Context, platformName string, rawCredentials map[string]string) Outcome {
	platformName = strings.TrimSpace(platformName)
	if platformName == "" || len(rawCredentials) == 0 {
		return r.finish(platformName, false, ErrorTypeCredential, map[string]any{
			"error_type": string(ErrorTypeCredential),
		})
	}

	credentials := platforms.NormalizeCredentials(rawCredentials)
	auth := r.resolveAuth(ctx, platformName, credentials)

	details := map[string]any{
		"test_url": auth.TestURL,
		"method":   auth.Method,
	}

	statusCode, preview, err := r.probe(ctx, auth)
	if err != nil {
		errorType := ClassifyTransportError(err)
		details["error_type"] = string(errorType)
		details["transport_error"] = err.Error()
		return r.finish(platformName, false, errorType, details)
	}

	details["status_code"] = statusCode
	if preview != "" {
		details["response_preview"] = preview
	}

	errorType := ClassifyStatus(statusCode)
	if errorType == "" {
		return r.finish(platformName, true, "", details)
	}

	details["error_type"] = string(errorType)
	return r.finish(platformName, false, errorType, details)
}

func (r *Runner) resolveAuth(ctx context.Context, platformName string, credentials map[string]string) platforms.ResolvedAuth {
	if r.configs != nil {
		cfg, err := r.configs.FindPlatformConfig(ctx, platformName)
		if err == nil && cfg != nil {
			return platforms.ResolveAuthFromConfig(*cfg, credentials)
		}
		if err != nil {
			log.Debugf("no stored platform config for %s: %v", platformName, err)
		}
	}

	return platforms.ResolveAuth(platformName, credentials)
}

func (r *Runner) probe(ctx context.Context, auth platforms.ResolvedAuth) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, auth.Method, auth.TestURL, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to build probe request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for name, value := range auth.Headers {
		req.Header.Set(name, value)
	}

	res, err := r.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	preview, err := io.ReadAll(io.LimitReader(res.Body, responsePreviewLimit))
	if err != nil {
		// The status line already arrived; classification can proceed.
		log.Debugf("failed to read probe response body: %v", err)
	}

	return res.StatusCode, string(preview), nil
}

// finish builds the outcome and records the insight. The insight write is
// best-effort: a failing sink is an observability event, not an error.
func (r *Runner) finish(platformName string, success bool, errorType ErrorType, details map[string]any) Outcome {
	if r.insights != nil {
		if err := r.insights.Record(platformName, success, errorType, details); err != nil {
			log.Warnf("failed to record credential insight for %s: %v", platformName, err)
		}
	}

	return Outcome{
		Success:          success,
		UserMessage:      UserMessage(platformName, errorType),
		TechnicalDetails: details,
	}
}
