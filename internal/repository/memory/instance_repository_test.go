package memory

import (
	"testing"
	"time"

	"aura-ops-be/internal/entity"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(records ...*entity.InstanceRecord) *InstanceRepository {
	repo := NewInstanceRepository()
	repo.ReplaceAll(records)
	return repo
}

func TestReplaceAllSwapsContents(t *testing.T) {
	repo := seedRepo(
		&entity.InstanceRecord{ID: "a", Name: "alpha", Status: "running"},
		&entity.InstanceRecord{ID: "b", Name: "beta", Status: "paused"},
	)
	assert.Equal(t, 2, repo.Count())

	repo.ReplaceAll([]*entity.InstanceRecord{
		{ID: "c", Name: "gamma", Status: "running"},
	})

	assert.Equal(t, 1, repo.Count())
	_, found := repo.Get("a")
	assert.False(t, found)
	record, found := repo.Get("c")
	require.True(t, found)
	assert.Equal(t, "gamma", record.Name)
}

func TestGetReturnsClone(t *testing.T) {
	repo := seedRepo(&entity.InstanceRecord{ID: "a", Status: "running"})

	record, found := repo.Get("a")
	require.True(t, found)
	record.Status = "mutated"

	stored, _ := repo.Get("a")
	assert.Equal(t, "running", stored.Status, "callers must not reach the stored record")
}

func TestReplaceAllDetachesInput(t *testing.T) {
	input := &entity.InstanceRecord{ID: "a", Status: "running"}
	repo := seedRepo(input)

	input.Status = "mutated"

	stored, _ := repo.Get("a")
	assert.Equal(t, "running", stored.Status)
}

func TestListSortedByNameThenID(t *testing.T) {
	repo := seedRepo(
		&entity.InstanceRecord{ID: "3", Name: "beta"},
		&entity.InstanceRecord{ID: "2", Name: "alpha"},
		&entity.InstanceRecord{ID: "1", Name: "beta"},
	)

	records := repo.List()
	require.Len(t, records, 3)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
	assert.Equal(t, "3", records[2].ID)
}

func TestUpdateAppliedAndFound(t *testing.T) {
	repo := seedRepo(&entity.InstanceRecord{ID: "a", Status: "running", Seq: 5})

	applied, found := repo.Update("a", func(r *entity.InstanceRecord) bool {
		r.Status = "paused"
		r.Seq = 6
		return true
	})
	assert.True(t, applied)
	assert.True(t, found)
	record, _ := repo.Get("a")
	assert.Equal(t, "paused", record.Status)

	applied, found = repo.Update("a", func(r *entity.InstanceRecord) bool {
		r.Status = "running"
		return false // rejected mutation must not stick
	})
	assert.False(t, applied)
	assert.True(t, found)
	record, _ = repo.Get("a")
	assert.Equal(t, "paused", record.Status)

	applied, found = repo.Update("missing", func(r *entity.InstanceRecord) bool { return true })
	assert.False(t, applied)
	assert.False(t, found)
}

func TestDeleteAndClear(t *testing.T) {
	repo := seedRepo(
		&entity.InstanceRecord{ID: "a"},
		&entity.InstanceRecord{ID: "b"},
	)

	repo.Delete("a")
	assert.Equal(t, 1, repo.Count())

	repo.Clear()
	assert.Equal(t, 0, repo.Count())
}

func TestRecentlyRefreshedExpires(t *testing.T) {
	repo := &InstanceRepository{
		records:   cache.New(cache.NoExpiration, time.Minute),
		refreshed: cache.New(30*time.Millisecond, time.Minute),
	}
	repo.ReplaceAll([]*entity.InstanceRecord{{ID: "a"}})

	assert.False(t, repo.RecentlyRefreshed("a"))
	repo.MarkRefreshed("a")
	assert.True(t, repo.RecentlyRefreshed("a"))

	assert.Eventually(t, func() bool {
		return !repo.RecentlyRefreshed("a")
	}, 2*time.Second, 10*time.Millisecond)
}
