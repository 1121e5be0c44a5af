package platforms

import (
	"net/http"
	"sort"
	"strings"

	"github.com/hooklinehq/hookline/pkg/configuration"
)

// Definition is the declarative record for one known platform: which
// credential fields it expects, how its auth headers are built, and which
// endpoint a probe should hit to prove the credentials work. Header and URL
// values are templates with {field} placeholders resolved against normalized
// credentials. The registry is process-lifetime constant data; a single
// generic interpreter (resolver.go) drives it.
type Definition struct {
	Key          string
	Label        string
	BaseURL      string
	Headers      map[string]string
	Query        map[string]string
	TestEndpoint string
	TestMethod   string
	Fields       []configuration.Field
}

var registry = map[string]Definition{
	"openai": {
		Key:          "openai",
		Label:        "OpenAI",
		BaseURL:      "https://api.openai.com",
		Headers:      map[string]string{"Authorization": "Bearer {api_key}"},
		TestEndpoint: "/v1/models",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:        "api_key",
				Label:       "API Key",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "sk-...",
				DocsURL:     "https://platform.openai.com/api-keys",
				Description: "Secret key from the OpenAI dashboard",
			},
		},
	},
	"slack": {
		Key:          "slack",
		Label:        "Slack",
		BaseURL:      "https://slack.com",
		Headers:      map[string]string{"Authorization": "Bearer {bot_token}"},
		TestEndpoint: "/api/auth.test",
		TestMethod:   http.MethodPost,
		Fields: []configuration.Field{
			{
				Name:        "bot_token",
				Label:       "Bot Token",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "xoxb-...",
				DocsURL:     "https://api.slack.com/authentication/token-types",
				Description: "Bot user OAuth token for your Slack app",
			},
		},
	},
	"github": {
		Key:     "github",
		Label:   "GitHub",
		BaseURL: "https://api.github.com",
		Headers: map[string]string{
			"Authorization": "Bearer {personal_access_token}",
			"Accept":        "application/vnd.github+json",
		},
		TestEndpoint: "/user",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:        "personal_access_token",
				Label:       "Personal Access Token",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "ghp_...",
				DocsURL:     "https://github.com/settings/tokens",
				Description: "Fine-grained or classic personal access token",
			},
		},
	},
	"notion": {
		Key:     "notion",
		Label:   "Notion",
		BaseURL: "https://api.notion.com",
		Headers: map[string]string{
			"Authorization":  "Bearer {integration_token}",
			"Notion-Version": "2022-06-28",
		},
		TestEndpoint: "/v1/users/me",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:        "integration_token",
				Label:       "Integration Token",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "secret_...",
				DocsURL:     "https://www.notion.so/my-integrations",
				Description: "Internal integration secret",
			},
		},
	},
	"typeform": {
		Key:          "typeform",
		Label:        "Typeform",
		BaseURL:      "https://api.typeform.com",
		Headers:      map[string]string{"Authorization": "Bearer {personal_access_token}"},
		TestEndpoint: "/me",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:      "personal_access_token",
				Label:     "Personal Access Token",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
				DocsURL:   "https://www.typeform.com/developers/get-started/personal-access-token/",
			},
		},
	},
	"trello": {
		Key:     "trello",
		Label:   "Trello",
		BaseURL: "https://api.trello.com",
		Query: map[string]string{
			"key":   "{api_key}",
			"token": "{token}",
		},
		TestEndpoint: "/1/members/me",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:      "api_key",
				Label:     "API Key",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
				DocsURL:   "https://trello.com/power-ups/admin",
			},
			{
				Name:      "token",
				Label:     "Token",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
			},
		},
	},
	"google": {
		Key:          "google",
		Label:        "Google",
		BaseURL:      "https://www.googleapis.com",
		Headers:      map[string]string{"Authorization": "Bearer {access_token}"},
		TestEndpoint: "/oauth2/v2/userinfo",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:      "access_token",
				Label:     "Access Token",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
				DocsURL:   "https://developers.google.com/identity/protocols/oauth2",
			},
		},
	},
	"telegram": {
		Key:          "telegram",
		Label:        "Telegram",
		BaseURL:      "https://api.telegram.org",
		TestEndpoint: "/bot{bot_token}/getMe",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:        "bot_token",
				Label:       "Bot Token",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "123456789:ABCdef...",
				DocsURL:     "https://core.telegram.org/bots/api",
				Description: "Token from @BotFather",
			},
		},
	},
	"stripe": {
		Key:          "stripe",
		Label:        "Stripe",
		BaseURL:      "https://api.stripe.com",
		Headers:      map[string]string{"Authorization": "Bearer {secret_key}"},
		TestEndpoint: "/v1/balance",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:        "secret_key",
				Label:       "Secret Key",
				Type:        configuration.FieldTypeSecret,
				Required:    true,
				Sensitive:   true,
				Placeholder: "sk_live_...",
				DocsURL:     "https://dashboard.stripe.com/apikeys",
			},
		},
	},
	"sendgrid": {
		Key:          "sendgrid",
		Label:        "SendGrid",
		BaseURL:      "https://api.sendgrid.com",
		Headers:      map[string]string{"Authorization": "Bearer {api_key}"},
		TestEndpoint: "/v3/user/profile",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:      "api_key",
				Label:     "API Key",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
				DocsURL:   "https://app.sendgrid.com/settings/api_keys",
			},
		},
	},
	"airtable": {
		Key:          "airtable",
		Label:        "Airtable",
		BaseURL:      "https://api.airtable.com",
		Headers:      map[string]string{"Authorization": "Bearer {personal_access_token}"},
		TestEndpoint: "/v0/meta/whoami",
		TestMethod:   http.MethodGet,
		Fields: []configuration.Field{
			{
				Name:      "personal_access_token",
				Label:     "Personal Access Token",
				Type:      configuration.FieldTypeSecret,
				Required:  true,
				Sensitive: true,
				DocsURL:   "https://airtable.com/create/tokens",
			},
		},
	},
}

// FindDefinition matches a user-facing platform name against the registry.
// Matching is a case-insensitive substring check in both directions, so
// "Gmail / Google Workspace" finds the google entry and "slack" finds Slack.
func FindDefinition(platformName string) (Definition, bool) {
	name := strings.ToLower(strings.TrimSpace(platformName))
	if name == "" {
		return Definition{}, false
	}

	if def, ok := registry[name]; ok {
		return def, true
	}

	// Deterministic order when multiple keys could match.
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return registry[key], true
		}
	}

	// Gmail is addressed by product name, not by the google key.
	if strings.Contains(name, "gmail") {
		return registry["google"], true
	}

	return Definition{}, false
}

// Definitions returns all registry entries sorted by key.
func Definitions() []Definition {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	defs := make([]Definition, 0, len(keys))
	for _, key := range keys {
		defs = append(defs, registry[key])
	}

	return defs
}
