package repository

import (
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// RelaySessionRepositoryImpl implements RelaySessionRepository
type RelaySessionRepositoryImpl struct {
	*BaseRepository[models.RelaySession]
}

// NewRelaySessionRepository creates a new relay session repository
func NewRelaySessionRepository(store KVStore) RelaySessionRepository {
	return &RelaySessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RelaySession](store, RelaySessionKeyPrefix),
	}
}
