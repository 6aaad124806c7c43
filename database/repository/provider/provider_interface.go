package providerRepo

import (
	"context"

	"slotify/models"
)

// ProviderRepository defines read access to provider accounts.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	EnsureIndexes() error
}
