package public

import (
	"github.com/google/uuid"

	"github.com/hooklinehq/hookline/pkg/models"
)

// Store is the storage surface the HTTP layer depends on. The production
// implementation delegates to the models package; tests substitute an
// in-memory fake.
type Store interface {
	CreateWebhook(automationID string) (*models.Webhook, error)
	ListWebhooks() ([]models.Webhook, error)
	FindWebhookByID(id uuid.UUID) (*models.Webhook, error)
	FindActiveWebhook(automationID, urlFragment string) (*models.Webhook, error)
	SetWebhookActive(webhook *models.Webhook, active bool) error
	DeleteWebhook(id uuid.UUID) error

	RecordTrigger(webhook *models.Webhook) error
	AddDelivery(webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) error
	ListDeliveries(webhookID uuid.UUID, limit int) ([]models.WebhookDelivery, error)

	ListInsights(platformName string, limit int) ([]models.CredentialInsight, error)
	ListPlatforms() ([]models.Platform, error)
}

// DatabaseStore is the gorm-backed Store.
type DatabaseStore struct {
	BaseURL string
}

func (s *DatabaseStore) CreateWebhook(automationID string) (*models.Webhook, error) {
	return models.CreateWebhook(automationID, s.BaseURL)
}

func (s *DatabaseStore) ListWebhooks() ([]models.Webhook, error) {
	return models.ListWebhooks()
}

func (s *DatabaseStore) FindWebhookByID(id uuid.UUID) (*models.Webhook, error) {
	return models.FindWebhookByID(id)
}

func (s *DatabaseStore) FindActiveWebhook(automationID, urlFragment string) (*models.Webhook, error) {
	return models.FindActiveWebhook(automationID, urlFragment)
}

func (s *DatabaseStore) SetWebhookActive(webhook *models.Webhook, active bool) error {
	return webhook.SetActive(active)
}

func (s *DatabaseStore) DeleteWebhook(id uuid.UUID) error {
	return models.DeleteWebhook(id)
}

func (s *DatabaseStore) RecordTrigger(webhook *models.Webhook) error {
	return webhook.RecordTrigger()
}

func (s *DatabaseStore) AddDelivery(webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) error {
	return models.AddWebhookDelivery(webhookID, payload, statusCode, responseBody)
}

func (s *DatabaseStore) ListDeliveries(webhookID uuid.UUID, limit int) ([]models.WebhookDelivery, error) {
	return models.ListWebhookDeliveries(webhookID, limit)
}

func (s *DatabaseStore) ListInsights(platformName string, limit int) ([]models.CredentialInsight, error) {
	return models.ListCredentialInsights(platformName, limit)
}

func (s *DatabaseStore) ListPlatforms() ([]models.Platform, error) {
	return models.ListPlatforms()
}
