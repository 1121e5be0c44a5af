package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/database"
)

// Webhook binds an inbound trigger URL to exactly one automation. The URL
// embeds an unguessable random fragment; the secret is used for optional
// HMAC signing of deliveries.
type Webhook struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AutomationID    string     `gorm:"index:idx_webhooks_automation,unique" json:"automation_id"`
	URL             string     `gorm:"uniqueIndex" json:"url"`
	URLFragment     string     `gorm:"uniqueIndex" json:"url_fragment"`
	Secret          string     `json:"secret"`
	Active          bool       `gorm:"default:true" json:"active"`
	TriggerCount    int64      `json:"trigger_count"`
	LastTriggeredAt *time.Time `json:"last_triggered_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

// CreateWebhook provisions a webhook for an automation, generating the URL
// fragment and signing secret.
func CreateWebhook(automationID, baseURL string) (*Webhook, error) {
	return CreateWebhookInTransaction(database.Conn(), automationID, baseURL)
}

func CreateWebhookInTransaction(tx *gorm.DB, automationID, baseURL string) (*Webhook, error) {
	fragment, err := randomToken(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate webhook URL fragment: %w", err)
	}

	secret, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate webhook secret: %w", err)
	}

	webhook := Webhook{
		AutomationID: automationID,
		URL:          fmt.Sprintf("%s/webhook-trigger/%s", baseURL, fragment),
		URLFragment:  fragment,
		Secret:       secret,
		Active:       true,
	}

	if err := tx.Create(&webhook).Error; err != nil {
		return nil, err
	}

	return &webhook, nil
}

// FindActiveWebhook resolves the webhook row for a delivery. The fragment is
// matched exactly against its own column: it arrives verbatim from the
// request path, so a pattern match would let LIKE metacharacters stand in
// for the unguessable fragment.
func FindActiveWebhook(automationID, urlFragment string) (*Webhook, error) {
	return FindActiveWebhookInTransaction(database.Conn(), automationID, urlFragment)
}

func FindActiveWebhookInTransaction(tx *gorm.DB, automationID, urlFragment string) (*Webhook, error) {
	var webhook Webhook
	err := tx.
		Where("automation_id = ?", automationID).
		Where("url_fragment = ?", urlFragment).
		Where("active = ?", true).
		First(&webhook).Error
	if err != nil {
		return nil, err
	}

	return &webhook, nil
}

// RecordTrigger atomically bumps the trigger counter and stamps the last
// trigger time. The increment happens in SQL so concurrent deliveries to the
// same webhook never lose updates.
func (w *Webhook) RecordTrigger() error {
	return w.RecordTriggerInTransaction(database.Conn())
}

func (w *Webhook) RecordTriggerInTransaction(tx *gorm.DB) error {
	now := time.Now()
	return tx.Model(&Webhook{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"trigger_count":     gorm.Expr("trigger_count + 1"),
			"last_triggered_at": now,
		}).Error
}

func ListWebhooks() ([]Webhook, error) {
	var webhooks []Webhook
	err := database.Conn().Order("created_at DESC").Find(&webhooks).Error
	return webhooks, err
}

func FindWebhookByID(id uuid.UUID) (*Webhook, error) {
	var webhook Webhook
	if err := database.Conn().First(&webhook, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &webhook, nil
}

// SetActive flips the active flag. Deactivation is reversible; deletion is not.
func (w *Webhook) SetActive(active bool) error {
	return database.Conn().Model(w).Update("active", active).Error
}

func DeleteWebhook(id uuid.UUID) error {
	return database.Conn().Delete(&Webhook{}, "id = ?", id).Error
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
