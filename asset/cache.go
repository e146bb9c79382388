package asset

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/background"
	"github.com/adjoint-io/uplink/fault"
)

// pendingTimeout is the maximum time an unconfirmed asset stays in Cache
// before it expires, matching the source's asset registration timeout.
const pendingTimeout = 60 * time.Minute

// pendingState tracks whether a cached asset is still waiting to be
// confirmed or has already been marked verified by the caller.
type pendingState int

const (
	statePending pendingState = iota
	stateVerified
)

type pendingEntry struct {
	packed Packed
	state  pendingState
}

// Cache buffers assets that have been submitted but not yet committed to
// the ledger store, so a node does not re-broadcast or re-process the same
// registration while it is in flight.
//
// It replaces the source's hand-rolled container/list expiry queue with
// patrickmn/go-cache's own TTL janitor, since the problem is "hold an item
// for a bounded time, then drop it".
type Cache struct {
	mu    sync.RWMutex
	log   *logger.L
	store *gocache.Cache
}

// NewCache constructs an empty pending-asset cache, logging through the
// same "asset" channel name the source's Initialise opens.
func NewCache() *Cache {
	log := assetLog()
	log.Info("starting…")
	return &Cache{log: log, store: gocache.New(pendingTimeout, pendingTimeout/2)}
}

// assetLog lazily opens the package's "asset" logger channel on first use,
// the way the source's Initialise does at startup, rather than at package
// load — logger.Initialise (test fixtures, a node's main) may not have run
// yet when this package is imported.
var assetLog = sync.OnceValue(func() *logger.L {
	return logger.New("asset")
})

func cacheKey(addr address.Address[address.AAsset]) string {
	return addr.String()
}

// Put registers a, returning its packed form if this is the first time it
// has been seen, or nil if an identical pending entry already exists.
// Resubmitting a different asset under the same address before
// confirmation is reported as fault.ErrAssetRequestFail — the source's
// analogous dataWouldChange path.
func (c *Cache) Put(a Asset) (Packed, error) {
	packed := a.Pack()
	key := cacheKey(a.Address)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existingRaw, ok := c.store.Get(key); ok {
		existing := existingRaw.(*pendingEntry)
		if string(existing.packed) == string(packed) {
			existing.state = statePending
			c.store.Set(key, existing, pendingTimeout)
			c.log.Debugf("put: extending pending entry for %s", key)
			return nil, nil
		}
		c.log.Warnf("put: conflicting registration for %s", key)
		return nil, fault.ErrAssetRequestFail
	}

	c.log.Infof("put: new pending entry for %s", key)
	c.store.Set(key, &pendingEntry{packed: packed, state: statePending}, pendingTimeout)
	return packed, nil
}

// Exists reports whether addr has a pending (unconfirmed) entry.
func (c *Cache) Exists(addr address.Address[address.AAsset]) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store.Get(cacheKey(addr))
	return ok
}

// Get returns the packed form cached for addr, or nil if absent.
func (c *Cache) Get(addr address.Address[address.AAsset]) Packed {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.store.Get(cacheKey(addr))
	if !ok {
		return nil
	}
	return raw.(*pendingEntry).packed
}

// Delete removes addr's pending entry, typically once it has been
// persisted to the ledger store.
func (c *Cache) Delete(addr address.Address[address.AAsset]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(addr)
	c.store.Delete(key)
	c.log.Debugf("delete: %s", key)
}

// SetVerified marks a pending entry as verified, protecting it from
// expiry until the caller explicitly deletes it. It panics if addr has no
// pending entry — the caller is expected to have checked Exists first,
// the same invariant the source's SetVerified enforces with
// logger.Panicf, here via fault.Panicf.
func (c *Cache) SetVerified(addr address.Address[address.AAsset]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(addr)
	raw, ok := c.store.Get(key)
	if !ok {
		fault.Panicf("asset: SetVerified: no cache entry for %s", key)
	}
	entry := raw.(*pendingEntry)
	entry.state = stateVerified
	c.store.Set(key, entry, gocache.NoExpiration)
	c.log.Debugf("set verified: %s", key)
}

// runner adapts Cache to background.Processor so a node can evict expired
// entries on a fixed interval without the pure Cache type depending on
// background itself.
type runner struct {
	cache *Cache
}

// NewRunner returns a background.Processor that periodically evicts
// expired entries from c. go-cache already runs its own janitor goroutine
// internally; this loop exists only so Cache participates in the same
// start/stop lifecycle as the rest of a node's background workers.
func NewRunner(c *Cache) background.Processor {
	return &runner{cache: c}
}

func (r *runner) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			r.cache.store.DeleteExpired()
		}
	}
}
