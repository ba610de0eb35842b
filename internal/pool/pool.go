// Package pool provides object pools for render-path allocations. The
// renderer rebuilds every visible row on each frame; pooling the builders
// keeps steady-state rendering allocation-free.
package pool

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns a reset string builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets and returns a builder to the pool. Builders that
// grew past 64KiB are dropped so one huge row doesn't pin memory.
func PutStringBuilder(sb *strings.Builder) {
	if sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var rowSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, 64)
		return &s
	},
}

// GetRowSlice returns an empty string slice for collecting rendered rows.
func GetRowSlice() *[]string {
	return rowSlicePool.Get().(*[]string)
}

// PutRowSlice returns a row slice to the pool.
func PutRowSlice(s *[]string) {
	*s = (*s)[:0]
	rowSlicePool.Put(s)
}
