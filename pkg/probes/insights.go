package probes

import (
	"context"

	"github.com/hooklinehq/hookline/pkg/models"
	"github.com/hooklinehq/hookline/pkg/platforms"
)

// DatabaseInsightSink writes insights to the credential_insights table.
type DatabaseInsightSink struct{}

func (DatabaseInsightSink) Record(platformName string, success bool, errorType ErrorType, details map[string]any) error {
	return models.AddCredentialInsight(platformName, success, string(errorType), details)
}

// DatabaseConfigSource resolves stored platform configurations from the
// platforms table.
type DatabaseConfigSource struct{}

func (DatabaseConfigSource) FindPlatformConfig(_ context.Context, name string) (*platforms.Config, error) {
	platform, err := models.FindPlatformByName(name)
	if err != nil {
		return nil, err
	}

	cfg := platform.Config()
	return &cfg, nil
}
