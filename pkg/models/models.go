package models

import "github.com/hooklinehq/hookline/pkg/database"

// Migrate creates or updates the schema for all hookline tables.
func Migrate() error {
	return database.Conn().AutoMigrate(
		&Webhook{},
		&WebhookDelivery{},
		&Platform{},
		&CredentialInsight{},
	)
}
