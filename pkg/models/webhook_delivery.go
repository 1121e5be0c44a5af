package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/database"
)

// WebhookDelivery is the append-only audit record of one inbound webhook
// call. Rows are never updated after creation.
type WebhookDelivery struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WebhookID    uuid.UUID      `gorm:"type:uuid;index" json:"webhook_id"`
	Payload      datatypes.JSON `json:"payload"`
	StatusCode   int            `json:"status_code"`
	ResponseBody string         `json:"response_body"`
	Attempt      int            `gorm:"default:1" json:"attempt"`
	DeliveredAt  time.Time      `json:"delivered_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (WebhookDelivery) TableName() string {
	return "webhook_deliveries"
}

func AddWebhookDelivery(webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) error {
	return AddWebhookDeliveryInTransaction(database.Conn(), webhookID, payload, statusCode, responseBody)
}

func AddWebhookDeliveryInTransaction(tx *gorm.DB, webhookID uuid.UUID, payload []byte, statusCode int, responseBody string) error {
	record := WebhookDelivery{
		WebhookID:    webhookID,
		Payload:      datatypes.JSON(payload),
		StatusCode:   statusCode,
		ResponseBody: responseBody,
		Attempt:      1,
		DeliveredAt:  time.Now(),
	}

	return tx.Create(&record).Error
}

func ListWebhookDeliveries(webhookID uuid.UUID, limit int) ([]WebhookDelivery, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []WebhookDelivery
	err := database.Conn().
		Where("webhook_id = ?", webhookID).
		Order("delivered_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// PruneWebhookDeliveries removes delivery records older than maxAge and
// returns how many were deleted. Used by the retention worker.
func PruneWebhookDeliveries(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	result := database.Conn().
		Where("delivered_at < ?", cutoff).
		Delete(&WebhookDelivery{})

	return result.RowsAffected, result.Error
}
