// Package bench implements the benchmarking harness §6 names as an
// external collaborator: per-render timing/throughput/RAM stats, written
// to Efficiency_results/<algo>_<accel>_efficiency.txt, plus a progress
// logger satisfying core.Logger.
package bench

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/df07/go-accel-tracer/pkg/core"
)

// DefaultLogger wraps the standard library logger to satisfy
// core.Logger, matching the teacher's convention of a thin adapter over
// *log.Logger rather than a dedicated logging library — the pack has no
// complete repo that imports one.
type DefaultLogger struct {
	*log.Logger
}

// NewDefaultLogger builds a DefaultLogger writing to stderr with a time
// prefix.
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// Stats is the timing/throughput/memory summary for one render, matching
// the three lines §6 requires in the results file.
type Stats struct {
	RenderTime time.Duration
	Pixels     int
	RAMUsageMB float64
}

// PixelsPerSecond is the "Average Pixels per second" line's value.
func (s Stats) PixelsPerSecond() float64 {
	seconds := s.RenderTime.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(s.Pixels) / seconds
}

// Timer measures wall-clock render time and the change in live heap
// allocation (runtime.MemStats.Alloc) between StartTimer and Stop; if the
// heap shrank, Stop reports the live allocation at stop instead. It does
// not track the peak.
type Timer struct {
	start    time.Time
	startMem uint64
}

// StartTimer begins timing a render.
func StartTimer() *Timer {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &Timer{start: time.Now(), startMem: m.Alloc}
}

// Stop ends timing and produces Stats for the given pixel count.
func (t *Timer) Stop(pixels int) Stats {
	elapsed := time.Since(t.start)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	deltaBytes := float64(m.Alloc) - float64(t.startMem)
	if deltaBytes < 0 {
		deltaBytes = float64(m.Alloc)
	}

	return Stats{
		RenderTime: elapsed,
		Pixels:     pixels,
		RAMUsageMB: deltaBytes / (1024 * 1024),
	}
}

// WriteResults appends the three-line results file under
// Efficiency_results/<algo>_<accel>_efficiency.txt, per §6's CLI surface
// contract.
func WriteResults(dir, algo, accel string, stats Stats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bench: create %q: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s_efficiency.txt", algo, accel)
	path := filepath.Join(dir, name)

	content := fmt.Sprintf(
		"Render time: %.3f seconds\nAverage Pixels per second: %.0f pps\nAverage RAM usage during rendering: %.2f MB\n",
		stats.RenderTime.Seconds(), stats.PixelsPerSecond(), stats.RAMUsageMB,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("bench: open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("bench: write %q: %w", path, err)
	}
	return nil
}
