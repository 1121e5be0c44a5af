package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/database"
)

// CredentialInsight records the outcome of one credential test. Insights feed
// analytics only; writes are best-effort and correctness never depends on them.
type CredentialInsight struct {
	ID               uuid.UUID                          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PlatformName     string                             `gorm:"index" json:"platform_name"`
	Success          bool                               `json:"success"`
	ErrorType        string                             `json:"error_type"`
	TechnicalDetails datatypes.JSONType[map[string]any] `json:"technical_details"`
	CreatedAt        time.Time                          `json:"created_at"`
}

func (CredentialInsight) TableName() string {
	return "credential_insights"
}

func AddCredentialInsight(platformName string, success bool, errorType string, details map[string]any) error {
	return AddCredentialInsightInTransaction(database.Conn(), platformName, success, errorType, details)
}

func AddCredentialInsightInTransaction(tx *gorm.DB, platformName string, success bool, errorType string, details map[string]any) error {
	record := CredentialInsight{
		PlatformName:     platformName,
		Success:          success,
		ErrorType:        errorType,
		TechnicalDetails: datatypes.NewJSONType(details),
	}

	return tx.Create(&record).Error
}

func ListCredentialInsights(platformName string, limit int) ([]CredentialInsight, error) {
	if limit <= 0 {
		limit = 100
	}

	query := database.Conn().Order("created_at DESC").Limit(limit)
	if platformName != "" {
		query = query.Where("LOWER(platform_name) = LOWER(?)", platformName)
	}

	var records []CredentialInsight
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
