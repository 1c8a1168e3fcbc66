package memory

import (
	"sort"
	"sync"
	"time"

	"aura-ops-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// InstanceRepository is the in-memory cache of instance records. Records
// never expire on their own; they only change through the reconciler's merge
// points. The separate refreshed cache carries the short-lived "recently
// refreshed" display hint and is allowed to expire.
//
// The mutex makes read-modify-write sequences atomic. go-cache locks each
// call, but a merge needs to read the current sequence tag and write back
// under the same lock.
type InstanceRepository struct {
	mu        sync.Mutex
	records   *cache.Cache
	refreshed *cache.Cache
}

func NewInstanceRepository() *InstanceRepository {
	return &InstanceRepository{
		records:   cache.New(cache.NoExpiration, 10*time.Minute),
		refreshed: cache.New(1*time.Second, 1*time.Minute),
	}
}

// ReplaceAll swaps the whole cache for the given records, one per id.
func (r *InstanceRepository) ReplaceAll(records []*entity.InstanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records.Flush()
	for _, record := range records {
		r.records.Set(record.ID, record.Clone(), cache.NoExpiration)
	}
}

func (r *InstanceRepository) Get(id string) (*entity.InstanceRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.records.Get(id); found {
		return x.(*entity.InstanceRecord).Clone(), true
	}
	return nil, false
}

// List returns clones of all records, sorted by name then id for a stable
// table order.
func (r *InstanceRepository) List() []*entity.InstanceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.records.Items()
	records := make([]*entity.InstanceRecord, 0, len(items))
	for _, item := range items {
		records = append(records, item.Object.(*entity.InstanceRecord).Clone())
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].ID < records[j].ID
	})
	return records
}

// Update applies fn to the record under the repository lock. fn returns
// whether its mutation should be kept; a false return leaves the stored
// record untouched (a dropped stale merge). Reports (applied, found).
func (r *InstanceRepository) Update(id string, fn func(*entity.InstanceRecord) bool) (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.records.Get(id)
	if !found {
		return false, false
	}
	record := x.(*entity.InstanceRecord).Clone()
	if !fn(record) {
		return false, true
	}
	r.records.Set(id, record, cache.NoExpiration)
	return true, true
}

func (r *InstanceRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records.Delete(id)
	r.refreshed.Delete(id)
}

func (r *InstanceRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records.Flush()
	r.refreshed.Flush()
}

func (r *InstanceRepository) Count() int {
	return r.records.ItemCount()
}

// MarkRefreshed flags the record for the transient highlight window. The
// flag expires on its own; nothing depends on it clearing.
func (r *InstanceRepository) MarkRefreshed(id string) {
	r.refreshed.SetDefault(id, struct{}{})
}

func (r *InstanceRepository) RecentlyRefreshed(id string) bool {
	_, found := r.refreshed.Get(id)
	return found
}
