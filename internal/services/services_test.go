package services

import (
	"sync"
	"time"
)

// fakeRecorder captures the counters services report.
type fakeRecorder struct {
	mu       sync.Mutex
	cascades []int64
	swept    []int64
}

func (r *fakeRecorder) RecordRequest(string, string, int, time.Duration) {}

func (r *fakeRecorder) RecordCascadeDelete(tasks int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cascades = append(r.cascades, tasks)
}

func (r *fakeRecorder) RecordOrphansSwept(tasks int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swept = append(r.swept, tasks)
}
