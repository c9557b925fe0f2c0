package engine

import (
	"context"
	"time"
)

type LimitMode uint8

const (
	LimitModeInfinite LimitMode = iota
	LimitModeMovetime
	LimitModeNodes
)

func (m LimitMode) String() string {
	switch m {
	case LimitModeMovetime:
		return "movetime"
	case LimitModeNodes:
		return "nodes"
	default:
		return "infinite"
	}
}

// Limits stops a running search once its node budget is spent or its context is done.
// A stopped search stays stopped until the next Start.
type Limits struct {
	mode        LimitMode
	targetNodes uint64

	ctx    context.Context
	cancel context.CancelFunc
	done   bool
}

func NewLimits() *Limits {
	return &Limits{done: true}
}

// Start arms the limits for one search. A zero movetime or node count leaves that limit off;
// the context deadline, if any, always applies.
func (l *Limits) Start(ctx context.Context, movetime time.Duration, nodes uint64) {
	l.Stop()
	l.mode = LimitModeInfinite
	l.targetNodes = nodes
	l.done = false

	if movetime != 0 {
		l.mode = LimitModeMovetime
		l.ctx, l.cancel = context.WithTimeout(ctx, movetime)
		return
	}
	if nodes != 0 {
		l.mode = LimitModeNodes
	}
	l.ctx, l.cancel = context.WithCancel(ctx)
}

func (l *Limits) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.done = true
}

func (l *Limits) Mode() LimitMode {
	return l.mode
}

// Done reports whether the search has to stop after visiting nodes nodes.
func (l *Limits) Done(nodes uint64) bool {
	if l.done {
		return true
	}
	if l.targetNodes != 0 && nodes > l.targetNodes {
		l.done = true
		return true
	}
	select {
	case <-l.ctx.Done():
		l.done = true
	default:
	}
	return l.done
}

// Stopped reports whether Done has tripped since the last Start.
func (l *Limits) Stopped() bool {
	return l.done
}
