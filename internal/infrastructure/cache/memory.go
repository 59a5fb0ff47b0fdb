package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bumpwatch/pkg/logx"
)

// Memory is the in-process Store. Entries are held as marshaled bytes so
// repeated reads inside a TTL window are byte-identical to the first.
type Memory struct {
	entries *gocache.Cache
}

// NewMemory returns an in-process store whose background sweep runs every
// sweepInterval. The sweep is a liveness optimization only; the expiry check
// on every read is what guarantees correctness.
func NewMemory(sweepInterval time.Duration) *Memory {
	return &Memory{
		entries: gocache.New(gocache.NoExpiration, sweepInterval),
	}
}

func (m *Memory) Get(ctx context.Context, key string, dest any) bool {
	raw, found := m.entries.Get(key)
	if !found {
		return false
	}

	data, ok := raw.([]byte)
	if !ok {
		m.entries.Delete(key)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger(ctx).Warn("cache entry unreadable, evicting",
			logx.Error(err),
			"key", key,
		)
		m.entries.Delete(key)
		return false
	}

	return true
}

func (m *Memory) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger(ctx).Warn("cache value not serializable, skipping",
			logx.Error(err),
			"key", key,
		)
		return
	}

	m.entries.Set(key, data, ttl)
}
