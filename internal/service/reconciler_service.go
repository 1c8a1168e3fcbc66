// FILE: internal/service/reconciler_service.go
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"aura-ops-be/internal/dto"
	"aura-ops-be/internal/entity"
	"aura-ops-be/internal/pkg/logger"
	"aura-ops-be/internal/repository/memory"
	"aura-ops-be/pkg/aura"
	"aura-ops-be/pkg/notice"

	"aura-ops-be/internal/apperror"

	"github.com/cenkalti/backoff/v4"
)

// IReconcilerService keeps the in-memory view of instance records
// approximately consistent with the remote system. The remote side
// transitions asynchronously and pushes nothing, so the view converges
// through polling, optimistic transitions and sequence-tagged merges.
type IReconcilerService interface {
	LoadAll(ctx context.Context) ([]dto.InstanceResponse, error)
	List() []dto.InstanceResponse
	RefreshOne(ctx context.Context, id string) (*dto.InstanceResponse, error)
	IssueAction(ctx context.Context, id string, action aura.Action) (*dto.InstanceResponse, error)
	DeleteOne(ctx context.Context, id string, confirmed bool) error
	Count() int
}

type reconcilerService struct {
	auraClient aura.API
	repo       *memory.InstanceRepository
	notices    INoticeService
	sysLogger  logger.ILogger

	// seq tags every fetch and optimistic write at issuance. Merges apply
	// only when their tag is newer than the record's, so responses resolving
	// out of issuance order cannot regress the status.
	seq atomic.Uint64

	// Convergence polling knobs. After an action the remote system takes a
	// while to finish transitioning; we re-check with exponential backoff
	// until a terminal status shows up or the attempts run out.
	opTimeout        time.Duration
	pollInitialDelay time.Duration
	pollMaxInterval  time.Duration
	pollMaxAttempts  uint64
}

var errStillTransitioning = errors.New("instance still transitioning")

func NewReconcilerService(
	auraClient aura.API,
	repo *memory.InstanceRepository,
	notices INoticeService,
	sysLogger logger.ILogger,
) IReconcilerService {
	return &reconcilerService{
		auraClient:       auraClient,
		repo:             repo,
		notices:          notices,
		sysLogger:        sysLogger,
		opTimeout:        30 * time.Second,
		pollInitialDelay: 5 * time.Second,
		pollMaxInterval:  80 * time.Second,
		pollMaxAttempts:  8,
	}
}

// LoadAll fetches the instance list and replaces the cache with one record
// per returned item, then enriches every record with a concurrent detail
// fetch in the background. After the list fetch the cache holds exactly the
// remote set of ids; enrichment only updates records in place.
func (r *reconcilerService) LoadAll(ctx context.Context) ([]dto.InstanceResponse, error) {
	// The list fetch takes a sequence tag at issuance like every other
	// fetch, and the replacement records carry it. A detail fetch issued
	// before this list resolves against records it cannot outrank.
	seq := r.seq.Add(1)

	summaries, err := r.auraClient.ListInstances(ctx)
	if err != nil {
		// A failed list leaves nothing trustworthy behind.
		r.repo.Clear()
		r.sysLogger.Error("reconciler", "Instance list fetch failed", map[string]interface{}{"error": err.Error()})
		r.notices.Publish(notice.LevelError, "Load failed", "Could not fetch the instance list: "+err.Error(), "")
		return nil, err
	}

	records := make([]*entity.InstanceRecord, 0, len(summaries))
	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		records = append(records, &entity.InstanceRecord{
			ID:      summary.ID,
			Name:    summary.Name,
			Status:  summary.Status,
			Memory:  summary.Memory,
			Storage: summary.Storage,
			Region:  summary.Region,
			Seq:     seq,
		})
		ids = append(ids, summary.ID)
	}
	r.repo.ReplaceAll(records)

	r.sysLogger.Info("reconciler", "Instance list loaded", map[string]interface{}{"count": len(records)})

	// Detail enrichment happens after the list replacement, concurrently per
	// record. Failures are isolated per id and reported as notices; the
	// caller is not kept waiting for them.
	go r.enrichAll(ids)

	return r.toResponses(records), nil
}

func (r *reconcilerService) enrichAll(ids []string) {
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(instanceID string) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
			defer cancel()
			if _, err := r.RefreshOne(ctx, instanceID); err != nil {
				r.sysLogger.Warn("reconciler", "Detail enrichment failed", map[string]interface{}{
					"instanceId": instanceID,
					"error":      err.Error(),
				})
			}
		}(id)
	}
	wg.Wait()
}

func (r *reconcilerService) List() []dto.InstanceResponse {
	return r.toResponses(r.repo.List())
}

func (r *reconcilerService) Count() int {
	return r.repo.Count()
}

// RefreshOne fetches the detail snapshot for one id and merges it into the
// cached record. The fetch is tagged before the network call; if a fresher
// merge landed while this one was in flight, the stale snapshot is dropped.
// An id that is no longer cached is a no-op.
func (r *reconcilerService) RefreshOne(ctx context.Context, id string) (*dto.InstanceResponse, error) {
	if id == "" {
		return nil, apperror.NewValidation("instance id is required")
	}

	seq := r.seq.Add(1)

	detail, err := r.auraClient.GetInstance(ctx, id)
	if err != nil {
		// The cached record stays as-is; last-known-good beats blank.
		r.notices.Publish(notice.LevelError, "Refresh failed", err.Error(), id)
		return nil, err
	}

	applied := r.mergeDetail(id, seq, detail)
	record, found := r.repo.Get(id)
	if !found {
		// Record disappeared between fetch and merge. Self-heals: the
		// response is simply discarded.
		return nil, nil
	}
	if applied {
		r.repo.MarkRefreshed(id)
	}

	response := r.toResponse(record)
	return &response, nil
}

// mergeDetail applies a detail snapshot under the record lock. Returns false
// when the snapshot lost the race against a newer merge or the record is
// gone. Applying the same logical snapshot twice materializes once.
func (r *reconcilerService) mergeDetail(id string, seq uint64, detail *aura.InstanceDetail) bool {
	applied, _ := r.repo.Update(id, func(record *entity.InstanceRecord) bool {
		if seq <= record.Seq {
			return false
		}
		record.Status = detail.Status
		if detail.Name != "" {
			record.Name = detail.Name
		}
		if detail.Memory != "" {
			record.Memory = detail.Memory
		}
		if detail.Storage != "" {
			record.Storage = detail.Storage
		}
		if detail.Region != "" {
			record.Region = detail.Region
		}
		record.LastUpdated = time.Now()
		record.Seq = seq
		return true
	})
	return applied
}

// IssueAction issues pause or resume for one instance. The transitional
// status gate is enforced here, before any network call, regardless of what
// the UI disabled. On success the record gets the optimistic transitional
// status and a convergence poll is scheduled, since the remote system never
// pushes completion.
func (r *reconcilerService) IssueAction(ctx context.Context, id string, action aura.Action) (*dto.InstanceResponse, error) {
	if id == "" {
		return nil, apperror.NewValidation("instance id is required")
	}
	if !action.Valid() {
		return nil, apperror.NewValidation("invalid action %q, must be %q or %q", action, aura.ActionPause, aura.ActionResume)
	}

	record, found := r.repo.Get(id)
	if !found {
		return nil, apperror.NewValidation("unknown instance %q", id)
	}
	if entity.IsTransitional(record.Status) {
		return nil, apperror.NewValidation("instance %q is %s, wait for the transition to complete", id, record.Status)
	}

	if _, err := r.auraClient.PerformAction(ctx, id, action); err != nil {
		// No optimistic mutation on failure: the displayed status must not
		// show a transition that was never accepted.
		r.notices.Publish(notice.LevelError, "Action failed", err.Error(), id)
		return nil, err
	}

	optimistic := entity.StatusPausing
	if action == aura.ActionResume {
		optimistic = entity.StatusResuming
	}

	seq := r.seq.Add(1)
	r.repo.Update(id, func(rec *entity.InstanceRecord) bool {
		if seq <= rec.Seq {
			return false
		}
		rec.Status = optimistic
		rec.LastUpdated = time.Now()
		rec.Seq = seq
		return true
	})

	r.sysLogger.Info("reconciler", "Action issued", map[string]interface{}{
		"instanceId": id,
		"action":     string(action),
	})
	r.notices.Publish(notice.LevelInfo, "Action issued", "Instance "+id+" is now "+optimistic+".", id)

	go r.converge(id)

	updated, found := r.repo.Get(id)
	if !found {
		// Deleted between the action call and this read. Same no-op
		// contract as RefreshOne.
		return nil, nil
	}
	response := r.toResponse(updated)
	return &response, nil
}

// converge polls the detail endpoint until a terminal status is observed or
// the attempts run out. A still-transitioning instance at exhaustion gets a
// warning notice instead of silently giving up.
func (r *reconcilerService) converge(id string) {
	time.Sleep(r.pollInitialDelay)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.pollInitialDelay
	bo.MaxInterval = r.pollMaxInterval
	bo.MaxElapsedTime = 0

	check := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
		defer cancel()

		response, err := r.RefreshOne(ctx, id)
		if err != nil {
			return err
		}
		if response == nil {
			// Record was removed while polling; nothing left to converge.
			return nil
		}
		if entity.IsTransitional(response.Status) {
			return errStillTransitioning
		}
		return nil
	}

	if err := backoff.Retry(check, backoff.WithMaxRetries(bo, r.pollMaxAttempts)); err != nil {
		r.sysLogger.Warn("reconciler", "Instance did not reach a terminal status", map[string]interface{}{
			"instanceId": id,
			"error":      err.Error(),
		})
		r.notices.Publish(notice.LevelWarning, "Still transitioning",
			"Instance "+id+" has not reached a terminal status yet. It will update on the next refresh.", id)
	}
}

// DeleteOne removes an instance: confirm, remote delete, then drop the
// record. A failed remote call keeps the record, so the view never claims a
// deletion that did not happen.
func (r *reconcilerService) DeleteOne(ctx context.Context, id string, confirmed bool) error {
	if id == "" {
		return apperror.NewValidation("instance id is required")
	}
	if !confirmed {
		return apperror.NewValidation("deletion of instance %q requires confirmation", id)
	}
	if _, found := r.repo.Get(id); !found {
		return apperror.NewValidation("unknown instance %q", id)
	}

	if err := r.auraClient.DeleteInstance(ctx, id); err != nil {
		r.notices.Publish(notice.LevelError, "Delete failed", err.Error(), id)
		return err
	}

	r.repo.Delete(id)
	r.sysLogger.Info("reconciler", "Instance deleted", map[string]interface{}{"instanceId": id})
	r.notices.Publish(notice.LevelInfo, "Instance deleted", "Instance "+id+" was deleted.", id)
	return nil
}

func (r *reconcilerService) toResponses(records []*entity.InstanceRecord) []dto.InstanceResponse {
	responses := make([]dto.InstanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, r.toResponse(record))
	}
	return responses
}

func (r *reconcilerService) toResponse(record *entity.InstanceRecord) dto.InstanceResponse {
	lastUpdated := ""
	if !record.LastUpdated.IsZero() {
		lastUpdated = record.LastUpdated.Format(time.RFC3339)
	}
	return dto.InstanceResponse{
		ID:                record.ID,
		Name:              record.Name,
		Status:            record.Status,
		Memory:            record.Memory,
		Storage:           record.Storage,
		Region:            record.Region,
		LastUpdated:       lastUpdated,
		RecentlyRefreshed: r.repo.RecentlyRefreshed(record.ID),
	}
}
