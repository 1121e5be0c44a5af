package platforms

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/hooklinehq/hookline/pkg/configuration"
)

// ResolvedAuth is everything a probe needs to authenticate against a
// platform: synthesized headers, the test endpoint, and the HTTP method.
type ResolvedAuth struct {
	Headers map[string]string
	TestURL string
	Method  string
}

// Config is a dynamically stored platform configuration. It takes precedence
// over the built-in registry when present, which is how agent-discovered
// platforms work without code changes.
type Config struct {
	Name             string
	BaseURL          string
	AuthType         string
	AuthHeaderFormat string
	Fields           []configuration.Field
	Methods          map[string]ConfigMethod
}

type ConfigMethod struct {
	Method   string
	Endpoint string
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_\- ]+)\}`)

// ResolveAuth synthesizes auth headers and a test endpoint for a platform.
// Known platforms come from the registry; anything else falls back to a
// generic Bearer guess. Missing credentials never fail resolution: the
// affected header is omitted and the downstream probe reports the 401.
func ResolveAuth(platformName string, credentials map[string]string) ResolvedAuth {
	def, ok := FindDefinition(platformName)
	if !ok {
		return genericAuth(platformName, credentials)
	}

	headers := map[string]string{}
	for name, template := range def.Headers {
		if value, ok := substituteAll(template, credentials); ok {
			headers[name] = value
		}
	}

	testURL := def.BaseURL + def.TestEndpoint
	if value, ok := substituteAll(testURL, credentials); ok {
		testURL = value
	}

	if len(def.Query) > 0 {
		query := url.Values{}
		for param, template := range def.Query {
			if value, ok := substituteAll(template, credentials); ok {
				query.Set(param, value)
			}
		}
		if encoded := query.Encode(); encoded != "" {
			testURL += "?" + encoded
		}
	}

	method := def.TestMethod
	if method == "" {
		method = http.MethodGet
	}

	return ResolvedAuth{Headers: headers, TestURL: testURL, Method: method}
}

// ResolveAuthFromConfig applies a stored platform configuration instead of
// the registry. The auth header format uses the same {field} placeholders.
func ResolveAuthFromConfig(cfg Config, credentials map[string]string) ResolvedAuth {
	headers := map[string]string{}

	format := cfg.AuthHeaderFormat
	if format == "" {
		switch strings.ToLower(cfg.AuthType) {
		case "bearer", "oauth2":
			format = "Bearer {access_token}"
		case "api_key":
			format = "Bearer {api_key}"
		case "basic_auth":
			if value, ok := basicAuthHeader(credentials); ok {
				headers["Authorization"] = value
			} else {
				// No username/password pair: {credentials} must hold the
				// already base64-encoded user:password value.
				format = "Basic {credentials}"
			}
		}
	}

	if format != "" {
		if value, ok := substituteAll(format, credentials); ok {
			headers["Authorization"] = value
		}
	}

	testURL := cfg.BaseURL
	method := http.MethodGet
	if test, ok := cfg.Methods["test"]; ok {
		testURL = cfg.BaseURL + test.Endpoint
		if test.Method != "" {
			method = strings.ToUpper(test.Method)
		}
	}

	if value, ok := substituteAll(testURL, credentials); ok {
		testURL = value
	}

	return ResolvedAuth{Headers: headers, TestURL: testURL, Method: method}
}

// basicAuthHeader builds a standards-compliant Basic header from username
// and password credentials.
func basicAuthHeader(credentials map[string]string) (string, bool) {
	username, ok := lookupCredential(credentials, "username")
	if !ok {
		return "", false
	}

	password, ok := lookupCredential(credentials, "password")
	if !ok {
		return "", false
	}

	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)), true
}

// genericAuth is the fallback for unknown platforms: try common token fields
// as a Bearer token against a guessed API host.
func genericAuth(platformName string, credentials map[string]string) ResolvedAuth {
	headers := map[string]string{}
	for _, field := range []string{"api_key", "token", "access_token"} {
		if value, ok := lookupCredential(credentials, field); ok {
			headers["Authorization"] = "Bearer " + value
			break
		}
	}

	host := strings.ToLower(strings.TrimSpace(platformName))
	host = strings.ReplaceAll(host, " ", "")

	return ResolvedAuth{
		Headers: headers,
		TestURL: fmt.Sprintf("https://api.%s.com", host),
		Method:  http.MethodGet,
	}
}

// substituteAll replaces every {field} token in template. It reports false
// when any placeholder has no matching credential, in which case the caller
// omits the header entirely rather than sending a half-built value.
func substituteAll(template string, credentials map[string]string) (string, bool) {
	complete := true

	result := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		field := strings.Trim(token, "{}")
		if value, ok := lookupCredential(credentials, field); ok {
			return value
		}
		complete = false
		return token
	})

	return result, complete
}

// lookupCredential tries exact, lowercase, uppercase, and hyphen/underscore
// spellings of a field name against the credential map.
func lookupCredential(credentials map[string]string, field string) (string, bool) {
	candidates := []string{
		field,
		strings.ToLower(field),
		strings.ToUpper(field),
		strings.ReplaceAll(field, "-", "_"),
		strings.ReplaceAll(field, "_", "-"),
		strings.ReplaceAll(strings.ToLower(field), " ", "_"),
	}

	for _, candidate := range candidates {
		if value, ok := credentials[candidate]; ok && value != "" {
			return value, true
		}
	}

	return "", false
}
