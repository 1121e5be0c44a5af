package public

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/core"
	"github.com/hooklinehq/hookline/pkg/crypto"
	"github.com/hooklinehq/hookline/pkg/executor"
	"github.com/hooklinehq/hookline/pkg/jwt"
	"github.com/hooklinehq/hookline/pkg/models"
	"github.com/hooklinehq/hookline/pkg/probes"
)

type memoryStore struct {
	mu         sync.Mutex
	webhooks   map[uuid.UUID]*models.Webhook
	deliveries []models.WebhookDelivery
	insights   []models.CredentialInsight
	findErr    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{webhooks: map[uuid.UUID]*models.Webhook{}}
}

func (m *memoryStore) addWebhook(automationID, fragment, secret string, active bool) *models.Webhook {
	m.mu.Lock()
	defer m.mu.Unlock()

	webhook := &models.Webhook{
		ID:           uuid.New(),
		AutomationID: automationID,
		URL:          "https://hooks.example.com/webhook-trigger/" + fragment,
		URLFragment:  fragment,
		Secret:       secret,
		Active:       active,
	}
	m.webhooks[webhook.ID] = webhook
	return webhook
}

func (m *memoryStore) CreateWebhook(automationID string) (*models.Webhook, error) {
	return m.addWebhook(automationID, uuid.NewString(), uuid.NewString(), true), nil
}

func (m *memoryStore) ListWebhooks() ([]models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var webhooks []models.Webhook
	for _, webhook := range m.webhooks {
		webhooks = append(webhooks, *webhook)
	}
	return webhooks, nil
}

func (m *memoryStore) FindWebhookByID(id uuid.UUID) (*models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if webhook, ok := m.webhooks[id]; ok {
		return webhook, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) FindActiveWebhook(automationID, urlFragment string) (*models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}

	for _, webhook := range m.webhooks {
		if webhook.AutomationID == automationID &&
			webhook.URLFragment == urlFragment &&
			webhook.Active {
			return webhook, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) SetWebhookActive(webhook *models.Webhook, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhooks[webhook.ID].Active = active
	return nil
}

func (m *memoryStore) DeleteWebhook(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.webhooks, id)
	return nil
}

func (m *memoryStore) RecordTrigger(webhook *models.Webhook) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := m.webhooks[webhook.ID]
	stored.TriggerCount++
	stored.LastTriggeredAt = &now
	return nil
}

func (m *memoryStore) AddDelivery(webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deliveries = append(m.deliveries, models.WebhookDelivery{
		ID:           uuid.New(),
		WebhookID:    webhookID,
		Payload:      payload,
		StatusCode:   statusCode,
		ResponseBody: responseBody,
		DeliveredAt:  time.Now(),
	})
	return nil
}

func (m *memoryStore) ListDeliveries(webhookID uuid.UUID, _ int) ([]models.WebhookDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deliveries []models.WebhookDelivery
	for _, delivery := range m.deliveries {
		if delivery.WebhookID == webhookID {
			deliveries = append(deliveries, delivery)
		}
	}
	return deliveries, nil
}

func (m *memoryStore) ListInsights(_ string, _ int) ([]models.CredentialInsight, error) {
	return m.insights, nil
}

func (m *memoryStore) ListPlatforms() ([]models.Platform, error) {
	return nil, nil
}

type fakeExecutor struct {
	mu          sync.Mutex
	executionID string
	err         error
	triggers    []executor.TriggerPayload
}

func (f *fakeExecutor) Execute(_ context.Context, trigger executor.TriggerPayload) (string, error) {
	f.mu.Lock()
	f.triggers = append(f.triggers, trigger)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	return f.executionID, nil
}

func setupServer(store Store, exec executor.Executor) *Server {
	httpCtx := core.NewHTTPContext()
	return NewServer(
		store,
		exec,
		probes.NewRunner(httpCtx, nil, nil, time.Second),
		probes.NewConsole(httpCtx, time.Second),
		jwt.NewSigner("test-secret"),
	)
}

func triggerRequest(fragment, automationID, body string) *http.Request {
	target := fmt.Sprintf("/webhook-trigger/%s", fragment)
	if automationID != "" {
		target += "?automation_id=" + automationID
	}
	return httptest.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(body)))
}

func Test__WebhookTrigger__UnsignedDelivery(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123", "secret-1", true)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("abc123", "auto1", `{"foo":"bar"}`))

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"execution_id":"exec-1"`)
	assert.Contains(t, res.Body.String(), `"status":"success"`)

	// Executor received the structured trigger.
	require.Len(t, exec.triggers, 1)
	assert.Equal(t, "webhook", exec.triggers[0].Source)
	assert.Equal(t, webhook.ID.String(), exec.triggers[0].WebhookID)
	assert.JSONEq(t, `{"foo":"bar"}`, string(exec.triggers[0].Payload))

	// Counter incremented, delivery logged with status 200.
	assert.Equal(t, int64(1), store.webhooks[webhook.ID].TriggerCount)
	assert.NotNil(t, store.webhooks[webhook.ID].LastTriggeredAt)
	require.Len(t, store.deliveries, 1)
	assert.Equal(t, http.StatusOK, store.deliveries[0].StatusCode)
}

func Test__WebhookTrigger__InactiveWebhook(t *testing.T) {
	store := newMemoryStore()
	store.addWebhook("auto1", "abc123", "secret-1", false)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("abc123", "auto1", `{"foo":"bar"}`))

	require.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "Webhook not found or inactive")

	// No side effects at all.
	assert.Empty(t, exec.triggers)
	assert.Empty(t, store.deliveries)
}

func Test__WebhookTrigger__MissingAutomationID(t *testing.T) {
	store := newMemoryStore()
	store.addWebhook("auto1", "abc123", "secret-1", true)
	server := setupServer(store, &fakeExecutor{})

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("abc123", "", `{}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func Test__WebhookTrigger__MatchIsScopedToAutomation(t *testing.T) {
	store := newMemoryStore()
	store.addWebhook("auto1", "frag-a", "secret-a", true)
	webhookB := store.addWebhook("auto2", "frag-b", "secret-b", true)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	// Fragment of A with automation id of B must not match either webhook.
	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("frag-a", "auto2", `{}`))
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Empty(t, exec.triggers)
	assert.Equal(t, int64(0), store.webhooks[webhookB.ID].TriggerCount)
}

func Test__WebhookTrigger__WildcardFragmentDoesNotMatch(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123secretfragment", "secret-1", true)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	// SQL pattern metacharacters in the path must not stand in for the
	// fragment. %25 and %5F decode to % and _ respectively.
	for _, fragment := range []string{"%25", "%25%25", "abc123%25", "%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F%5F"} {
		res := httptest.NewRecorder()
		server.Router().ServeHTTP(res, triggerRequest(fragment, "auto1", `{}`))
		assert.Equal(t, http.StatusNotFound, res.Code, "fragment %q must not match", fragment)
	}

	assert.Empty(t, exec.triggers)
	assert.Equal(t, int64(0), store.webhooks[webhook.ID].TriggerCount)
}

func Test__WebhookTrigger__StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.addWebhook("auto1", "abc123", "secret-1", true)
	store.findErr = errors.New("connection refused")
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("abc123", "auto1", `{}`))

	// A storage outage is not "webhook does not exist".
	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Contains(t, res.Body.String(), "Failed to look up webhook")
	assert.Empty(t, exec.triggers)
	assert.Empty(t, store.deliveries)
}

func Test__WebhookTrigger__ValidSignature(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123", "secret-1", true)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	body := `{"foo":"bar"}`
	req := triggerRequest("abc123", "auto1", body)
	req.Header.Set("X-Webhook-Signature", crypto.SignPayload("secret-1", []byte(body)))

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, int64(1), store.webhooks[webhook.ID].TriggerCount)
}

func Test__WebhookTrigger__InvalidSignature(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123", "secret-1", true)
	exec := &fakeExecutor{executionID: "exec-1"}
	server := setupServer(store, exec)

	req := triggerRequest("abc123", "auto1", `{"foo":"bar"}`)
	req.Header.Set("X-Webhook-Signature", crypto.SignPayload("wrong-secret", []byte(`{"foo":"bar"}`)))

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Invalid webhook signature")

	// Not executed, counter untouched, but the rejection is on the audit trail.
	assert.Empty(t, exec.triggers)
	assert.Equal(t, int64(0), store.webhooks[webhook.ID].TriggerCount)
	require.Len(t, store.deliveries, 1)
	assert.Equal(t, http.StatusUnauthorized, store.deliveries[0].StatusCode)
}

func Test__WebhookTrigger__ExecutorFailure(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123", "secret-1", true)
	exec := &fakeExecutor{err: errors.New("automation engine unavailable")}
	server := setupServer(store, exec)

	res := httptest.NewRecorder()
	server.Router().ServeHTTP(res, triggerRequest("abc123", "auto1", `{"foo":"bar"}`))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Contains(t, res.Body.String(), "Automation execution failed")
	assert.Contains(t, res.Body.String(), "automation engine unavailable")

	// Delivery was accepted: counter and log still reflect the attempt.
	assert.Equal(t, int64(1), store.webhooks[webhook.ID].TriggerCount)
	require.Len(t, store.deliveries, 1)
	assert.Equal(t, http.StatusInternalServerError, store.deliveries[0].StatusCode)
}

func Test__WebhookTrigger__ConcurrentDeliveries(t *testing.T) {
	store := newMemoryStore()
	webhook := store.addWebhook("auto1", "abc123", "secret-1", true)
	server := setupServer(store, &fakeExecutor{executionID: "exec-1"})

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := httptest.NewRecorder()
			server.Router().ServeHTTP(res, triggerRequest("abc123", "auto1", `{}`))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), store.webhooks[webhook.ID].TriggerCount)
}
