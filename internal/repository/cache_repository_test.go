package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/parsuni/registry-api/pkg/errors"
)

func TestCacheRepositoryDegradesWithoutClient(t *testing.T) {
	repos := map[string]*CacheRepository{
		"nil repository": nil,
		"nil client":     NewCacheRepository(nil, nil),
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			var dest struct{ Value string }
			err := repo.Get(context.Background(), "students:list:x", &dest)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrCacheMiss))

			assert.NoError(t, repo.Set(context.Background(), "students:list:x", dest, time.Minute))
			assert.NoError(t, repo.DeleteByPattern(context.Background(), "students:list:*"))
		})
	}
}
