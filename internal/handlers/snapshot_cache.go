package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const snapshotKey = "inventory"

// SnapshotCache holds the most recently loaded snapshot for a limited time.
// The ledger always reads fresh; reuse between requests is decided here.
type SnapshotCache struct {
	ledger portssvc.LedgerReaderSvc
	lru    *expirable.LRU[string, domain.StoreSnapshot]

	// generation counts invalidations. A load started before an invalidation
	// is returned to its caller but never cached.
	mu         sync.Mutex
	generation uint64
}

// NewSnapshotCache creates a cache whose entries expire after ttl.
func NewSnapshotCache(ledger portssvc.LedgerReaderSvc, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ledger: ledger,
		lru:    expirable.NewLRU[string, domain.StoreSnapshot](1, nil, ttl),
	}
}

// Get returns the cached snapshot, loading a new one when the entry is
// missing, expired or refresh is set.
func (c *SnapshotCache) Get(ctx context.Context, refresh bool) (domain.StoreSnapshot, error) {
	if !refresh {
		if snapshot, ok := c.lru.Get(snapshotKey); ok {
			metrics.SnapshotCacheTotal.WithLabelValues("hit").Inc()
			return snapshot, nil
		}
	}
	metrics.SnapshotCacheTotal.WithLabelValues("miss").Inc()

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	snapshot, err := c.ledger.Load(ctx)
	if err != nil {
		return domain.StoreSnapshot{}, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.lru.Add(snapshotKey, snapshot)
	}
	c.mu.Unlock()
	return snapshot, nil
}

// Invalidate drops the cached snapshot. Call it after every successful write.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lru.Purge()
}
