// Package metrics exports engine activity as Prometheus series.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts gestures, rejected commits and animations.
type Recorder struct {
	gestures   *prometheus.CounterVec
	rejected   prometheus.Counter
	animations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		gestures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panzoom_gestures_total",
				Help: "Gestures started, by family",
			},
			[]string{"family"},
		),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panzoom_transforms_rejected_total",
			Help: "Transform commits rejected for non-finite values",
		}),
		animations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panzoom_animations_total",
				Help: "Finished animations, by name and outcome",
			},
			[]string{"name", "outcome"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panzoom_animation_duration_seconds",
				Help:    "Configured duration of completed animations",
				Buckets: []float64{0, .05, .1, .2, .4, .6, 1},
			},
			[]string{"name"},
		),
	}
	for _, c := range []prometheus.Collector{r.gestures, r.rejected, r.animations, r.durations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// GestureStarted counts one gesture of family.
func (r *Recorder) GestureStarted(family string) {
	r.gestures.WithLabelValues(family).Inc()
}

// TransformRejected counts one rejected commit.
func (r *Recorder) TransformRejected() {
	r.rejected.Inc()
}

// AnimationFinished counts one animation; completed ones also record d.
func (r *Recorder) AnimationFinished(name, outcome string, d time.Duration) {
	r.animations.WithLabelValues(name, outcome).Inc()
	if outcome == "completed" {
		r.durations.WithLabelValues(name).Observe(d.Seconds())
	}
}
