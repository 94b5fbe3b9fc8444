package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"fininclusion/internal/artifact"
	fixtures "fininclusion/internal/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObservePrediction(1, 2*time.Millisecond)
	r.ObservePrediction(1, time.Millisecond)
	r.ObservePrediction(0, time.Millisecond)
	r.ObserveError("unknown_category")

	if got := testutil.ToFloat64(r.predictions.WithLabelValues("1")); got != 2 {
		t.Errorf("predictions{label=1} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.predictions.WithLabelValues("0")); got != 1 {
		t.Errorf("predictions{label=0} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.errors.WithLabelValues("unknown_category")); got != 1 {
		t.Errorf("errors{kind=unknown_category} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 1 {
		t.Errorf("duration histogram count = %d series, want 1", got)
	}
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.ObservePrediction(1, time.Millisecond)
	r.ObserveError("load")
}

func TestArtifactCollector(t *testing.T) {
	arts, err := artifact.Load(context.Background(), fixtures.Source(t), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	c := NewArtifactCollector(arts)
	// 9 artifact info series + 8 encoder size series
	if got := testutil.CollectAndCount(c); got != 17 {
		t.Errorf("CollectAndCount() = %d, want 17", got)
	}
	if got := testutil.CollectAndCount(c, "fininclusion_encoder_classes"); got != 8 {
		t.Errorf("encoder series = %d, want 8", got)
	}
}
