package atomic

import (
	"sync/atomic"
)

// Counter is a counter safe for concurrent use.
type Counter struct {
	current atomic.Int64
}

func (c *Counter) Get() int64 {
	return c.current.Load()
}

// Incr increments the counter by 1 and returns the new value.
func (c *Counter) Incr() int64 {
	return c.current.Add(1)
}

// Add adds n to the counter and returns the new value.
func (c *Counter) Add(n int64) int64 {
	return c.current.Add(n)
}
