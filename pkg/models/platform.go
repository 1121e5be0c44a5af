package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hooklinehq/hookline/pkg/configuration"
	"github.com/hooklinehq/hookline/pkg/database"
	"github.com/hooklinehq/hookline/pkg/platforms"
)

// Platform is stored configuration for authenticating against a third-party
// API. Rows are reference data: seeded at startup or written by the platform
// discovery agent, never mutated by the delivery or probe paths. When a row
// exists for a platform it takes precedence over the built-in registry.
type Platform struct {
	ID               uuid.UUID                                     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string                                        `gorm:"uniqueIndex" json:"name"`
	BaseURL          string                                        `json:"base_url"`
	AuthType         string                                        `json:"auth_type"`
	AuthHeaderFormat string                                        `json:"auth_header_format"`
	Fields           datatypes.JSONType[[]configuration.Field]     `json:"fields"`
	APIMethods       datatypes.JSONType[map[string]PlatformMethod] `json:"api_methods"`
	CreatedAt        time.Time                                     `json:"created_at"`
	UpdatedAt        time.Time                                     `json:"updated_at"`
}

// PlatformMethod is one named API call a platform exposes, e.g. a test or
// list endpoint.
type PlatformMethod struct {
	Method   string `json:"method"`
	Endpoint string `json:"endpoint"`
}

func (Platform) TableName() string {
	return "platforms"
}

// Config converts the stored row into the resolver's configuration shape.
func (p *Platform) Config() platforms.Config {
	methods := map[string]platforms.ConfigMethod{}
	for name, method := range p.APIMethods.Data() {
		methods[name] = platforms.ConfigMethod{
			Method:   method.Method,
			Endpoint: method.Endpoint,
		}
	}

	return platforms.Config{
		Name:             p.Name,
		BaseURL:          p.BaseURL,
		AuthType:         p.AuthType,
		AuthHeaderFormat: p.AuthHeaderFormat,
		Fields:           p.Fields.Data(),
		Methods:          methods,
	}
}

// FindPlatformByName does a case-insensitive lookup.
func FindPlatformByName(name string) (*Platform, error) {
	return FindPlatformByNameInTransaction(database.Conn(), name)
}

func FindPlatformByNameInTransaction(tx *gorm.DB, name string) (*Platform, error) {
	var platform Platform
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&platform).Error
	if err != nil {
		return nil, err
	}

	return &platform, nil
}

// UpsertPlatform creates or refreshes a platform row by name. Used by seeding.
func UpsertPlatform(platform *Platform) error {
	return UpsertPlatformInTransaction(database.Conn(), platform)
}

func UpsertPlatformInTransaction(tx *gorm.DB, platform *Platform) error {
	existing, err := FindPlatformByNameInTransaction(tx, platform.Name)
	if err == gorm.ErrRecordNotFound {
		return tx.Create(platform).Error
	}

	if err != nil {
		return err
	}

	platform.ID = existing.ID
	return tx.Model(existing).Updates(map[string]any{
		"base_url":           platform.BaseURL,
		"auth_type":          platform.AuthType,
		"auth_header_format": platform.AuthHeaderFormat,
		"fields":             platform.Fields,
		"api_methods":        platform.APIMethods,
	}).Error
}

func ListPlatforms() ([]Platform, error) {
	var platforms []Platform
	err := database.Conn().Order("name ASC").Find(&platforms).Error
	return platforms, err
}
