package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyageai/recommender-backend/internal/domain/providers"
	redisclient "github.com/voyageai/recommender-backend/internal/infrastructure/clients/redis"
)

// The adapter is constructed from the infrastructure client wrapper, not the
// raw go-redis client. Wiring code depends on this signature.
func TestNewRedisAdapterTakesClientWrapper(t *testing.T) {
	var client *redisclient.Client

	adapter := NewRedisAdapter(client)

	assert.NotNil(t, adapter)
	assert.Implements(t, (*providers.CacheProvider)(nil), adapter)
}
