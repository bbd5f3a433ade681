package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry collects run counters written by the frame loop and read at exit
type Registry struct {
	Ints  *MetricMap[atomic.Int64]
	Bools *MetricMap[atomic.Bool]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:  NewMetricMap[atomic.Int64](),
		Bools: NewMetricMap[atomic.Bool](),
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Bools.Count()
}

// Summary formats every metric as sorted key=value pairs on one line
func (r *Registry) Summary() string {
	var sb strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", key, v.Load())
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%t", key, v.Load())
	})
	return sb.String()
}
