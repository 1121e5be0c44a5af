package probes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the taxonomy for failed credential probes. Every outbound
// failure is caught and classified; nothing escapes the runner as a raw error.
type ErrorType string

const (
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypePermission     ErrorType = "permission"
	ErrorTypeEndpoint       ErrorType = "endpoint"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeCredential     ErrorType = "credential"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// ClassifyStatus maps an HTTP status code to an error type. A 2xx status
// returns an empty error type, meaning success.
func ClassifyStatus(statusCode int) ErrorType {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ""
	case statusCode == http.StatusUnauthorized:
		return ErrorTypeAuthentication
	case statusCode == http.StatusForbidden:
		return ErrorTypePermission
	case statusCode == http.StatusNotFound:
		return ErrorTypeEndpoint
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

// ClassifyTransportError distinguishes an aborted-by-timeout call from a
// plain transport failure (DNS, connection refused, TLS).
func ClassifyTransportError(err error) ErrorType {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return ErrorTypeTimeout
	}

	return ErrorTypeNetwork
}

// UserMessage renders the operator-facing explanation for a classification.
func UserMessage(platformName string, errorType ErrorType) string {
	switch errorType {
	case "":
		return fmt.Sprintf("Successfully connected to %s.", platformName)
	case ErrorTypeAuthentication:
		return fmt.Sprintf("Authentication with %s failed. Check that your API key or token is correct and has not expired.", platformName)
	case ErrorTypePermission:
		return fmt.Sprintf("%s rejected the request due to missing permissions. The credential works but lacks the required scopes.", platformName)
	case ErrorTypeEndpoint:
		return fmt.Sprintf("The %s test endpoint was not found. The platform API may have changed.", platformName)
	case ErrorTypeRateLimit:
		return fmt.Sprintf("%s is rate limiting requests. Wait a moment and try again.", platformName)
	case ErrorTypeServerError:
		return fmt.Sprintf("%s returned a server error. The platform may be experiencing an outage.", platformName)
	case ErrorTypeTimeout:
		return fmt.Sprintf("The request to %s timed out. The platform may be slow or unreachable.", platformName)
	case ErrorTypeNetwork:
		return fmt.Sprintf("Could not reach %s. Check the platform name and your network connectivity.", platformName)
	case ErrorTypeCredential:
		return "The credential payload is malformed. Provide a platform name and at least one credential field."
	default:
		return fmt.Sprintf("The %s credential test returned an unexpected result.", platformName)
	}
}
