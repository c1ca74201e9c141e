package worker

import (
	"context"
	"time"

	"eventboard/internal/entity"
	"eventboard/internal/service"

	"github.com/sirupsen/logrus"
)

// CacheWarmWorker periodically re-lists the first page of each filter mode
// so the hottest cache keys are refreshed before their TTL lapses and the
// landing pages never hit a cold cache.
type CacheWarmWorker struct {
	eventService service.EventService
	interval     time.Duration
}

func NewCacheWarmWorker(eventService service.EventService, interval time.Duration) *CacheWarmWorker {
	return &CacheWarmWorker{
		eventService: eventService,
		interval:     interval,
	}
}

func (w *CacheWarmWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Cache warm worker started")

	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Cache warm worker stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmWorker) warm(ctx context.Context) {
	filters := []entity.FilterMode{entity.FilterUpcoming, entity.FilterPast, entity.FilterAll}

	for _, filter := range filters {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, err := w.eventService.List(ctx, entity.ListingRequest{Filter: filter, Page: 1})
		if err != nil {
			logrus.Errorf("Failed to warm listing cache for filter %s: %v", filter, err)
		}
	}

	logrus.Debug("Listing cache warmed")
}
