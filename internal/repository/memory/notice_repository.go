package memory

import (
	"sort"
	"time"

	"aura-ops-be/pkg/notice"

	"github.com/patrickmn/go-cache"
)

// NoticeRepository holds the active transient notices. Entries expire on
// their own after the configured TTL, which is what makes the notices
// auto-dismissing.
type NoticeRepository struct {
	cache *cache.Cache
}

func NewNoticeRepository(ttl time.Duration) *NoticeRepository {
	return &NoticeRepository{
		cache: cache.New(ttl, time.Minute),
	}
}

func (r *NoticeRepository) Put(n notice.Notice) {
	r.cache.SetDefault(n.ID, n)
}

// All returns the live notices, newest first.
func (r *NoticeRepository) All() []notice.Notice {
	items := r.cache.Items()
	notices := make([]notice.Notice, 0, len(items))
	for _, item := range items {
		notices = append(notices, item.Object.(notice.Notice))
	}
	sort.Slice(notices, func(i, j int) bool {
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})
	return notices
}
