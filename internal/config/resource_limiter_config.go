package config

// ResourceLimiterConfig defines limits consulted before expensive comparisons
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"min=0"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"gte=0,lte=1"`
	MaxLCSCells        int64   `json:"max_lcs_cells,omitempty" yaml:"max_lcs_cells,omitempty" validate:"min=0"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        DefaultMaxMemoryMB,
		SystemMemThreshold: DefaultSystemMemThreshold,
		MaxLCSCells:        DefaultMaxLCSCells,
	}
}
