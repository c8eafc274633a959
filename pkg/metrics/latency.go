package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Latencies are tracked in microseconds from 1us up to one minute.
const (
	minValue = 1
	maxValue = int64(time.Minute / time.Microsecond)
	sigFigs  = 3
)

type Snapshot struct {
	Name   string  `json:"name"`
	Count  int64   `json:"count"`
	Errors int64   `json:"errors"`
	MeanMs float64 `json:"mean_ms"`
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
	P99Ms  float64 `json:"p99_ms"`
	MaxMs  float64 `json:"max_ms"`
}

type series struct {
	hist   *hdrhistogram.Histogram
	errors int64
}

type Recorder struct {
	mu     sync.Mutex
	series map[string]*series
}

func NewRecorder() *Recorder {
	return &Recorder{series: make(map[string]*series)}
}

// Observe records one operation under name. A nil Recorder is a no-op.
func (r *Recorder) Observe(name string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.series[name]
	if !ok {
		s = &series{hist: hdrhistogram.New(minValue, maxValue, sigFigs)}
		r.series[name] = s
	}

	us := d.Microseconds()
	if us < minValue {
		us = minValue
	}
	if us > maxValue {
		us = maxValue
	}
	_ = s.hist.RecordValue(us)
	if err != nil {
		s.errors++
	}
}

// Since is meant for defer: defer rec.Since("op", time.Now(), &err).
func (r *Recorder) Since(name string, start time.Time, err *error) {
	var e error
	if err != nil {
		e = *err
	}
	r.Observe(name, time.Since(start), e)
}

func (r *Recorder) Snapshot() []Snapshot {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Snapshot, 0, len(r.series))
	for name, s := range r.series {
		out = append(out, Snapshot{
			Name:   name,
			Count:  s.hist.TotalCount(),
			Errors: s.errors,
			MeanMs: s.hist.Mean() / 1000,
			P50Ms:  float64(s.hist.ValueAtQuantile(50)) / 1000,
			P95Ms:  float64(s.hist.ValueAtQuantile(95)) / 1000,
			P99Ms:  float64(s.hist.ValueAtQuantile(99)) / 1000,
			MaxMs:  float64(s.hist.Max()) / 1000,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
