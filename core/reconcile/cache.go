package reconcile

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedPlan wraps a computed plan with its freshness window.
type cachedPlan struct {
	plan  *Plan
	built time.Time
	ttl   time.Duration
}

// isExpired returns true if this entry has expired based on its TTL.
func (c *cachedPlan) isExpired() bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(c.built) > c.ttl
}

// planCacheStore holds computed plans keyed by caller-chosen key
// (collection|day|stamp). Restore previews are often refreshed repeatedly
// while the operator inspects them; caching avoids re-loading both record
// sets for every refresh.
type planCacheStore struct {
	mu    sync.RWMutex
	plans map[string]*cachedPlan
	sf    singleflight.Group
}

// globalPlanCache is the singleton plan cache.
var globalPlanCache = &planCacheStore{
	plans: make(map[string]*cachedPlan),
}

// GetOrBuildPlan returns the cached plan for key if it is still fresh, or
// invokes build and caches the result for ttl. A ttl of zero disables
// caching entirely (build runs every call, nothing is stored). Uses
// singleflight so concurrent requests for the same key build once.
func GetOrBuildPlan(key string, ttl time.Duration, build func() (*Plan, error)) (*Plan, error) {
	if ttl == 0 {
		return build()
	}

	// Fast path: fresh entry exists.
	globalPlanCache.mu.RLock()
	entry, exists := globalPlanCache.plans[key]
	globalPlanCache.mu.RUnlock()

	if exists && !entry.isExpired() {
		return entry.plan, nil
	}

	// Slow path: build under singleflight to prevent stampedes.
	result, err, _ := globalPlanCache.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight lock.
		globalPlanCache.mu.RLock()
		entry, exists := globalPlanCache.plans[key]
		globalPlanCache.mu.RUnlock()

		if exists && !entry.isExpired() {
			return entry.plan, nil
		}

		plan, err := build()
		if err != nil {
			return nil, err
		}

		globalPlanCache.mu.Lock()
		globalPlanCache.plans[key] = &cachedPlan{plan: plan, built: time.Now(), ttl: ttl}
		globalPlanCache.mu.Unlock()

		return plan, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Plan), nil
}

// InvalidatePlans drops every cached plan whose key starts with prefix.
// Called after an apply mutates a collection, so stale previews are not
// served afterwards. An empty prefix drops everything.
func InvalidatePlans(prefix string) {
	globalPlanCache.mu.Lock()
	defer globalPlanCache.mu.Unlock()
	for key := range globalPlanCache.plans {
		if strings.HasPrefix(key, prefix) {
			delete(globalPlanCache.plans, key)
		}
	}
}
