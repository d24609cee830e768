package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"passwordSimBackend/internal/core/domain"
)

// Collector samples process resource usage for active attack runs. Attempt
// counts are pushed by the orchestrator; CPU and memory are sampled here.
type Collector struct {
	mu      sync.RWMutex
	runs    map[string]*runState
	stopped map[string]chan struct{}
}

type runState struct {
	metrics   domain.ResourceMetrics
	startedAt time.Time
	attempts  int64
}

func NewCollector() *Collector {
	return &Collector{
		runs:    make(map[string]*runState),
		stopped: make(map[string]chan struct{}),
	}
}

func (c *Collector) StartRun(runID string) {
	done := make(chan struct{})

	c.mu.Lock()
	c.runs[runID] = &runState{
		startedAt: time.Now(),
		metrics:   domain.ResourceMetrics{LastUpdated: time.Now()},
	}
	c.stopped[runID] = done
	c.mu.Unlock()

	go c.sample(runID, done)
}

func (c *Collector) StopRun(runID string) {
	c.mu.Lock()
	if done, ok := c.stopped[runID]; ok {
		close(done)
		delete(c.stopped, runID)
	}
	c.mu.Unlock()
}

// RecordAttempts updates the attempt total and derived rate for a run.
func (c *Collector) RecordAttempts(runID string, attempts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.runs[runID]
	if !ok {
		return
	}
	run.attempts = attempts
	run.metrics.AttemptsPerSec = perSecond(attempts, time.Since(run.startedAt))
}

// Snapshot returns the final metrics view for a run and forgets it.
func (c *Collector) Snapshot(runID string) domain.ResourceMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	run, ok := c.runs[runID]
	if !ok {
		return domain.ResourceMetrics{}
	}
	delete(c.runs, runID)

	run.metrics.AttemptsPerSec = perSecond(run.attempts, time.Since(run.startedAt))
	return run.metrics
}

func (c *Collector) sample(runID string, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		cpuUsage, err := cpu.Percent(0, false)

		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		c.mu.Lock()
		run, ok := c.runs[runID]
		if !ok {
			c.mu.Unlock()
			return
		}
		if err == nil && len(cpuUsage) > 0 {
			run.metrics.CPUUsage = cpuUsage[0]
		}
		run.metrics.MemoryUsageMB = int64(stats.Alloc / 1024 / 1024)
		run.metrics.LastUpdated = time.Now()
		c.mu.Unlock()
	}
}

func perSecond(attempts int64, elapsed time.Duration) int64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return int64(float64(attempts) / seconds)
}
