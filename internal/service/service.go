package service

import (
	"context"
	"time"

	"menuboard/api/internal/cache"
	"menuboard/api/internal/domain"
	"menuboard/api/internal/repository"
	"menuboard/api/internal/sheet"
	"menuboard/api/internal/state"

	log "github.com/sirupsen/logrus"
)

// RefreshTrigger names what caused a fetch cycle, for the audit log.
type RefreshTrigger string

const (
	TriggerCold       RefreshTrigger = "cold"
	TriggerExpired    RefreshTrigger = "expired"
	TriggerManual     RefreshTrigger = "manual"
	TriggerBackground RefreshTrigger = "background"
)

// Menu orchestrates the ingestion pipeline: fetch CSV, parse, group, cache.
// The snapshot store and refresh repository are optional and may be nil.
type Menu struct {
	client    sheet.Client
	cache     *cache.Menu
	snapshots state.SnapshotStore
	refreshes repository.RefreshRepository
}

func NewMenu(
	client sheet.Client,
	menuCache *cache.Menu,
	snapshots state.SnapshotStore,
	refreshes repository.RefreshRepository,
) *Menu {
	return &Menu{
		client:    client,
		cache:     menuCache,
		snapshots: snapshots,
		refreshes: refreshes,
	}
}

// Get returns the current menu model. A fresh in-memory snapshot is returned
// as-is; otherwise the shared snapshot store is consulted, and only then the
// remote sheet. A failed fetch propagates the error rather than serving a
// stale snapshot.
func (s *Menu) Get(ctx context.Context) (*domain.MenuData, error) {
	data, fresh := s.cache.Get()
	if fresh {
		return data, nil
	}

	trigger := TriggerExpired
	if data == nil {
		trigger = TriggerCold

		if warmed := s.loadSnapshot(ctx); warmed != nil {
			return warmed, nil
		}
	}

	return s.fetch(ctx, trigger)
}

// Refresh discards both cache levels and fetches fresh, returning the new
// model. Concurrent refreshes each fetch independently; the last write wins.
func (s *Menu) Refresh(ctx context.Context, trigger RefreshTrigger) (*domain.MenuData, error) {
	s.cache.Invalidate()
	if s.snapshots != nil {
		if err := s.snapshots.Clear(ctx); err != nil {
			log.Warnf("Failed to clear menu snapshot store: %v", err)
		}
	}

	return s.fetch(ctx, trigger)
}

func (s *Menu) fetch(ctx context.Context, trigger RefreshTrigger) (*domain.MenuData, error) {
	csvText, err := s.client.Fetch(ctx)
	if err != nil {
		s.record(ctx, trigger, nil, err)
		return nil, err
	}

	items := sheet.Parse(csvText)
	data := domain.Group(items)

	s.cache.Set(data)
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, data); err != nil {
			log.Warnf("Failed to save menu snapshot: %v", err)
		}
	}
	s.record(ctx, trigger, data, nil)

	log.Infof("Menu refreshed (%s): %d items in %d sections",
		trigger, data.ItemCount(), len(data.Sections()))
	return data, nil
}

// loadSnapshot warms the in-memory cache from the shared store. The store's
// own TTL bounds staleness, so anything it still holds is usable.
func (s *Menu) loadSnapshot(ctx context.Context) *domain.MenuData {
	if s.snapshots == nil {
		return nil
	}

	data, fetchedAt, err := s.snapshots.Load(ctx)
	if err != nil {
		log.Warnf("Failed to load menu snapshot: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}

	s.cache.Set(data)
	log.Infof("Warmed menu cache from snapshot store (fetched %s ago)",
		time.Since(fetchedAt).Round(time.Second))
	return data
}

// record writes one audit row. Auditing must never break the pipeline, so
// failures are only logged.
func (s *Menu) record(ctx context.Context, trigger RefreshTrigger, data *domain.MenuData, fetchErr error) {
	if s.refreshes == nil {
		return
	}

	event := repository.RefreshEvent{
		At:      time.Now().UTC(),
		Trigger: string(trigger),
	}
	if data != nil {
		event.ItemCount = data.ItemCount()
		event.Sections = len(data.Sections())
	}
	if fetchErr != nil {
		event.Error = fetchErr.Error()
	}

	if err := s.refreshes.Record(ctx, event); err != nil {
		log.Errorf("Failed to record refresh event: %v", err)
	}
}

// History returns the most recent refresh events, newest first.
func (s *Menu) History(ctx context.Context, limit int) ([]repository.RefreshEvent, error) {
	if s.refreshes == nil {
		return nil, nil
	}
	return s.refreshes.Recent(ctx, limit)
}

// HistoryEnabled reports whether the refresh audit log is configured.
func (s *Menu) HistoryEnabled() bool {
	return s.refreshes != nil
}
