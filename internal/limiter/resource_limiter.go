package limiter

import (
	"fmt"
	"runtime"

	"github.com/aleister1102/datadiff/internal/config"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceLimiter guards expensive comparisons against memory exhaustion.
// The line/char diff allocates an (m+1)*(n+1) dynamic-programming table, so
// the dominant cost is known before the computation starts; callers consult
// the limiter with the sequence lengths and skip or fail fast instead of
// running the system out of memory.
type ResourceLimiter struct {
	config config.ResourceLimiterConfig
	logger zerolog.Logger
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	// Apply default values for any zero-value fields in the config
	if cfg.MaxMemoryMB == 0 {
		cfg.MaxMemoryMB = config.DefaultMaxMemoryMB
	}
	if cfg.SystemMemThreshold == 0 {
		cfg.SystemMemThreshold = config.DefaultSystemMemThreshold
	}
	if cfg.MaxLCSCells == 0 {
		cfg.MaxLCSCells = config.DefaultMaxLCSCells
	}

	return &ResourceLimiter{
		config: cfg,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
	}
}

// CheckMemoryLimit checks if current heap usage exceeds the configured limit
func (rl *ResourceLimiter) CheckMemoryLimit() error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	currentMB := int64(m.Alloc / 1024 / 1024)

	if currentMB > rl.config.MaxMemoryMB {
		return fmt.Errorf("memory limit exceeded: current %dMB > limit %dMB", currentMB, rl.config.MaxMemoryMB)
	}

	return nil
}

// CheckSystemMemory checks system-wide memory pressure via gopsutil.
// A read failure is logged and treated as no pressure; the limiter must not
// turn observability problems into diff failures.
func (rl *ResourceLimiter) CheckSystemMemory() error {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		rl.logger.Warn().Err(err).Msg("Failed to read system memory stats")
		return nil
	}

	usedRatio := vmStat.UsedPercent / 100.0
	if usedRatio > rl.config.SystemMemThreshold {
		return fmt.Errorf("system memory pressure too high: %.1f%% used > %.0f%% threshold",
			vmStat.UsedPercent, rl.config.SystemMemThreshold*100)
	}

	return nil
}

// CheckLCSBudget verifies the DP table for sequences of the given lengths
// stays within the configured cell budget.
func (rl *ResourceLimiter) CheckLCSBudget(leftLen, rightLen int) error {
	cells := (int64(leftLen) + 1) * (int64(rightLen) + 1)
	if cells > rl.config.MaxLCSCells {
		return fmt.Errorf("LCS table too large: %d cells > %d cell budget (%d x %d elements)",
			cells, rl.config.MaxLCSCells, leftLen, rightLen)
	}
	return nil
}

// CheckAll runs every guard relevant to a pending LCS computation
func (rl *ResourceLimiter) CheckAll(leftLen, rightLen int) error {
	if err := rl.CheckLCSBudget(leftLen, rightLen); err != nil {
		return err
	}
	if err := rl.CheckMemoryLimit(); err != nil {
		return err
	}
	return rl.CheckSystemMemory()
}
