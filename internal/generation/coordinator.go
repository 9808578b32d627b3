package generation

import (
	"context"
	"strings"
	"sync"
)

// Coordinator serializes generation runs against a single UI.
//
// Starting a run cancels the one in flight. From that moment the older run's
// UI calls are dropped and its result is reported with ErrSuperseded, so the
// loading indicator and output area only ever reflect the newest run. An empty
// submission is rejected without interrupting a run in progress.
type Coordinator struct {
	runner Runner
	ui     UI

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewCoordinator creates a Coordinator driving ui through runner.
func NewCoordinator(runner Runner, ui UI) *Coordinator {
	return &Coordinator{runner: runner, ui: ui}
}

// Run starts a generation, superseding any run still in flight.
func (c *Coordinator) Run(ctx context.Context, mode Mode, rawInput string) (Result, error) {
	if strings.TrimSpace(rawInput) == "" {
		return c.runner.Run(ctx, lockedUI{c: c}, mode, rawInput), nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	id := c.seq
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	result := c.runner.Run(runCtx, gatedUI{c: c, id: id}, mode, rawInput)

	c.mu.Lock()
	current := c.seq == id
	if current {
		c.cancel = nil
	}
	c.mu.Unlock()
	cancel()

	if !current {
		return result, ErrSuperseded
	}
	return result, nil
}

// InFlight reports whether a run is currently in progress.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// forward calls fn with the UI if run id is still the current run.
func (c *Coordinator) forward(id uint64, fn func(UI)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == id {
		fn(c.ui)
	}
}

// gatedUI forwards calls only while its run is the newest.
type gatedUI struct {
	c  *Coordinator
	id uint64
}

func (g gatedUI) SetLoading(loading bool) {
	g.c.forward(g.id, func(ui UI) { ui.SetLoading(loading) })
}

func (g gatedUI) SetOutputHTML(html string) {
	g.c.forward(g.id, func(ui UI) { ui.SetOutputHTML(html) })
}

func (g gatedUI) ShowToast(message string, severity Severity) {
	g.c.forward(g.id, func(ui UI) { ui.ShowToast(message, severity) })
}

// lockedUI forwards every call, serialized with the gated runs.
type lockedUI struct {
	c *Coordinator
}

func (l lockedUI) SetLoading(loading bool) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	l.c.ui.SetLoading(loading)
}

func (l lockedUI) SetOutputHTML(html string) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	l.c.ui.SetOutputHTML(html)
}

func (l lockedUI) ShowToast(message string, severity Severity) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	l.c.ui.ShowToast(message, severity)
}
