package platforms

import "strings"

// credentialAliases maps the human-readable labels users type into credential
// forms to the canonical snake_case field names the auth resolver expects.
var credentialAliases = map[string]string{
	"api key":               "api_key",
	"apikey":                "api_key",
	"api token":             "api_token",
	"access token":          "access_token",
	"auth token":            "auth_token",
	"bearer token":          "access_token",
	"bot token":             "bot_token",
	"integration token":     "integration_token",
	"personal access token": "personal_access_token",
	"secret key":            "secret_key",
	"client id":             "client_id",
	"client secret":         "client_secret",
	"webhook url":           "webhook_url",
	"account sid":           "account_sid",
	"app password":          "app_password",
}

// NormalizeCredentials canonicalizes user-supplied credential field names.
// Known labels map through the alias table; anything else is lowercased with
// spaces replaced by underscores. Original keys are kept alongside canonical
// ones so consumers expecting either spelling still find their value.
// The operation always succeeds and is idempotent.
func NormalizeCredentials(raw map[string]string) map[string]string {
	normalized := make(map[string]string, len(raw)*2)

	for key, value := range raw {
		normalized[key] = value

		canonical, ok := credentialAliases[strings.ToLower(key)]
		if !ok {
			canonical = strings.ReplaceAll(strings.ToLower(key), " ", "_")
		}

		if _, taken := normalized[canonical]; !taken {
			normalized[canonical] = value
		}
	}

	return normalized
}
