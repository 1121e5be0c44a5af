package platforms

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDefinition(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		def, ok := FindDefinition("slack")
		require.True(t, ok)
		assert.Equal(t, "slack", def.Key)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		def, ok := FindDefinition("Slack")
		require.True(t, ok)
		assert.Equal(t, "slack", def.Key)
	})

	t.Run("substring match", func(t *testing.T) {
		def, ok := FindDefinition("GitHub Enterprise")
		require.True(t, ok)
		assert.Equal(t, "github", def.Key)
	})

	t.Run("gmail maps to google", func(t *testing.T) {
		def, ok := FindDefinition("Gmail")
		require.True(t, ok)
		assert.Equal(t, "google", def.Key)
	})

	t.Run("unknown platform", func(t *testing.T) {
		_, ok := FindDefinition("frobnicator")
		assert.False(t, ok)
	})

	t.Run("empty name", func(t *testing.T) {
		_, ok := FindDefinition("")
		assert.False(t, ok)
	})
}

func TestResolveAuth(t *testing.T) {
	t.Run("slack bearer header and test endpoint", func(t *testing.T) {
		auth := ResolveAuth("Slack", map[string]string{"bot_token": "xoxb-123"})

		assert.Equal(t, "Bearer xoxb-123", auth.Headers["Authorization"])
		assert.Equal(t, "https://slack.com/api/auth.test", auth.TestURL)
		assert.Equal(t, http.MethodPost, auth.Method)
	})

	t.Run("notion includes version header", func(t *testing.T) {
		auth := ResolveAuth("Notion", map[string]string{"integration_token": "secret_abc"})

		assert.Equal(t, "Bearer secret_abc", auth.Headers["Authorization"])
		assert.Equal(t, "2022-06-28", auth.Headers["Notion-Version"])
		assert.Equal(t, "https://api.notion.com/v1/users/me", auth.TestURL)
	})

	t.Run("trello auth goes in the query string", func(t *testing.T) {
		auth := ResolveAuth("Trello", map[string]string{
			"api_key": "key-1",
			"token":   "tok-1",
		})

		assert.Empty(t, auth.Headers)
		assert.Contains(t, auth.TestURL, "https://api.trello.com/1/members/me?")
		assert.Contains(t, auth.TestURL, "key=key-1")
		assert.Contains(t, auth.TestURL, "token=tok-1")
	})

	t.Run("telegram token is embedded in the URL", func(t *testing.T) {
		auth := ResolveAuth("Telegram", map[string]string{"bot_token": "12345:abc"})

		assert.Equal(t, "https://api.telegram.org/bot12345:abc/getMe", auth.TestURL)
		assert.Empty(t, auth.Headers)
	})

	t.Run("missing credential omits the header", func(t *testing.T) {
		auth := ResolveAuth("Slack", map[string]string{"unrelated": "x"})

		_, present := auth.Headers["Authorization"]
		assert.False(t, present)
		assert.Equal(t, "https://slack.com/api/auth.test", auth.TestURL)
	})

	t.Run("credential spelling variants are tried", func(t *testing.T) {
		auth := ResolveAuth("Slack", map[string]string{"BOT_TOKEN": "xoxb-9"})
		assert.Equal(t, "Bearer xoxb-9", auth.Headers["Authorization"])

		auth = ResolveAuth("Slack", map[string]string{"bot-token": "xoxb-10"})
		assert.Equal(t, "Bearer xoxb-10", auth.Headers["Authorization"])
	})

	t.Run("generic fallback guesses a bearer endpoint", func(t *testing.T) {
		auth := ResolveAuth("Frobnicator", map[string]string{"api_key": "fk-1"})

		assert.Equal(t, "Bearer fk-1", auth.Headers["Authorization"])
		assert.Equal(t, "https://api.frobnicator.com", auth.TestURL)
		assert.Equal(t, http.MethodGet, auth.Method)
	})

	t.Run("generic fallback tries token after api_key", func(t *testing.T) {
		auth := ResolveAuth("Frobnicator", map[string]string{"token": "t-1"})
		assert.Equal(t, "Bearer t-1", auth.Headers["Authorization"])
	})
}

func TestResolveAuthFromConfig(t *testing.T) {
	cfg := Config{
		Name:             "acme",
		BaseURL:          "https://api.acme.dev",
		AuthType:         "api_key",
		AuthHeaderFormat: "Token {api_key}",
		Methods: map[string]ConfigMethod{
			"test": {Method: "post", Endpoint: "/v2/ping"},
		},
	}

	t.Run("stored config drives the resolution", func(t *testing.T) {
		auth := ResolveAuthFromConfig(cfg, map[string]string{"api_key": "ak-1"})

		assert.Equal(t, "Token ak-1", auth.Headers["Authorization"])
		assert.Equal(t, "https://api.acme.dev/v2/ping", auth.TestURL)
		assert.Equal(t, http.MethodPost, auth.Method)
	})

	t.Run("default format derived from auth type", func(t *testing.T) {
		plain := cfg
		plain.AuthHeaderFormat = ""
		auth := ResolveAuthFromConfig(plain, map[string]string{"api_key": "ak-2"})

		assert.Equal(t, "Bearer ak-2", auth.Headers["Authorization"])
	})

	t.Run("missing placeholder omits the header", func(t *testing.T) {
		auth := ResolveAuthFromConfig(cfg, map[string]string{})

		assert.Empty(t, auth.Headers)
		assert.Equal(t, "https://api.acme.dev/v2/ping", auth.TestURL)
	})

	t.Run("basic auth encodes username and password", func(t *testing.T) {
		basic := cfg
		basic.AuthType = "basic_auth"
		basic.AuthHeaderFormat = ""
		auth := ResolveAuthFromConfig(basic, map[string]string{
			"username": "ops",
			"password": "hunter2",
		})

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("ops:hunter2"))
		assert.Equal(t, expected, auth.Headers["Authorization"])
	})

	t.Run("basic auth accepts a pre-encoded credentials field", func(t *testing.T) {
		basic := cfg
		basic.AuthType = "basic_auth"
		basic.AuthHeaderFormat = ""
		encoded := base64.StdEncoding.EncodeToString([]byte("ops:hunter2"))
		auth := ResolveAuthFromConfig(basic, map[string]string{"credentials": encoded})

		assert.Equal(t, "Basic "+encoded, auth.Headers["Authorization"])
	})

	t.Run("no test method falls back to base URL", func(t *testing.T) {
		bare := cfg
		bare.Methods = nil
		auth := ResolveAuthFromConfig(bare, map[string]string{"api_key": "ak-3"})

		assert.Equal(t, "https://api.acme.dev", auth.TestURL)
		assert.Equal(t, http.MethodGet, auth.Method)
	})
}
