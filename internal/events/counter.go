package events

import (
	"context"
	"sync"
)

// Counter tallies received events by type. It backs the stats endpoint.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// HandleEvent implements EventHandler.
func (c *Counter) HandleEvent(_ context.Context, event *GenerationEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[event.Type]++
	return nil
}

// Snapshot returns a copy of the current counts.
func (c *Counter) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
