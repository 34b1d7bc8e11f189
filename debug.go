package sylva

import (
	"fmt"
	"log"
	"os"
	"time"
)

// globalDebug gates warning logs and the per-frame stats dump.
// Plain bool (no sync) — sylva is single-threaded.
var globalDebug bool

// SetDebug enables or disables debug logging and the per-frame stats dump.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugf logs a warning to the standard logger when debug mode is on.
func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf("sylva: "+format, args...)
	}
}

// debugStats holds per-frame timing and particle metrics.
// Only populated when debug mode is on.
type debugStats struct {
	updateTime    time.Duration
	submitTime    time.Duration
	particleCount int
	visibleCount  int
}

// debugLog prints timing and particle stats to stderr.
func debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sylva] update: %v | submit: %v | particles: %d | visible: %d\n",
		stats.updateTime, stats.submitTime, stats.particleCount, stats.visibleCount)
}
