// Package cache persists the last eligible media snapshot per lookup kind
// so short gaps in live detection do not blank the experience.
package cache

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/domain"
)

const keyPrefix = "nowplaying:eligible:"

// Record is the stored shape of a cached snapshot. Entries have no TTL;
// they are superseded only by the next eligible write.
type Record struct {
	Payload  domain.Payload `json:"payload"`
	CachedAt time.Time      `json:"cachedAt"`
}

// EligibilityCache stores one snapshot per lookup kind in the injected
// key-value store.
type EligibilityCache struct {
	logger *zap.Logger
	store  domain.Store
	now    func() time.Time
}

// NewEligibilityCache creates a cache backed by store.
func NewEligibilityCache(logger *zap.Logger, store domain.Store) *EligibilityCache {
	return &EligibilityCache{logger: logger, store: store, now: time.Now}
}

// Save persists payload as the last eligible snapshot for kind. The write
// is best-effort: failures are logged and swallowed, never surfaced to the
// caller. Callers must only pass payloads already confirmed eligible for
// kind.
func (c *EligibilityCache) Save(kind domain.LookupKind, payload domain.Payload) {
	data, err := json.Marshal(Record{Payload: payload, CachedAt: c.now()})
	if err != nil {
		c.logger.Warn("Failed to encode media snapshot",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return
	}
	if err := c.store.Set(key(kind), string(data)); err != nil {
		c.logger.Warn("Failed to persist media snapshot",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// Load returns the last eligible payload stored for kind, or nil when the
// slot is empty or unreadable. Parse failures and schema mismatches are a
// cache miss, not an error.
func (c *EligibilityCache) Load(kind domain.LookupKind) domain.Payload {
	raw, ok, err := c.store.Get(key(kind))
	if err != nil {
		c.logger.Warn("Failed to read media snapshot",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.logger.Debug("Discarding unreadable media snapshot",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}
	if len(rec.Payload) == 0 {
		return nil
	}
	return rec.Payload
}

func key(kind domain.LookupKind) string {
	return keyPrefix + string(kind)
}
