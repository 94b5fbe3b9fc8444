package jobs

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fininclusion/internal/db"
)

// ArtifactLister lists the artifacts held by the store.
type ArtifactLister interface {
	ListArtifacts(ctx context.Context) ([]db.StoredArtifact, error)
}

// StoreWatcher periodically compares the artifact store with the versions
// the process loaded at startup. Loaded artifacts are never swapped; a
// newer store only means the process needs a restart to pick it up.
type StoreWatcher struct {
	store    ArtifactLister
	loaded   map[string]string
	interval time.Duration
	stale    prometheus.Gauge
}

// NewStoreWatcher creates a watcher and registers its gauge with reg.
func NewStoreWatcher(store ArtifactLister, loaded map[string]string, interval time.Duration, reg prometheus.Registerer) *StoreWatcher {
	w := &StoreWatcher{
		store:    store,
		loaded:   loaded,
		interval: interval,
		stale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fininclusion_artifact_store_stale",
			Help: "1 when the artifact store holds versions other than the loaded ones",
		}),
	}
	reg.MustRegister(w.stale)
	return w
}

// Start begins the background check loop.
func (w *StoreWatcher) Start(ctx context.Context) {
	slog.Info("artifact store watcher started", "interval", w.interval)

	// Run immediately on start
	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("artifact store watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check returns the names of loaded artifacts whose stored version differs.
func (w *StoreWatcher) check(ctx context.Context) []string {
	stored, err := w.store.ListArtifacts(ctx)
	if err != nil {
		slog.Warn("artifact store watcher: failed to list artifacts", "error", err)
		return nil
	}

	current := make(map[string]string, len(stored))
	for _, a := range stored {
		current[a.Name] = a.Version
	}

	var changed []string
	for name, version := range w.loaded {
		if v, ok := current[name]; !ok || v != version {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)

	if len(changed) > 0 {
		w.stale.Set(1)
		slog.Warn("artifact store differs from loaded artifacts, restart to apply", "artifacts", changed)
	} else {
		w.stale.Set(0)
	}
	return changed
}
