package ident

import (
	"strconv"
	"strings"
	"time"
)

// Generator hands out prefix+timestamp identifiers. Two calls within the
// same millisecond still get distinct values because the stamp never goes
// backwards. A Generator is not safe for concurrent use.
type Generator struct {
	prefix string
	now    func() time.Time
	last   int64
}

func New(prefix string) *Generator {
	return &Generator{prefix: prefix, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) Prefix() string { return g.prefix }

func (g *Generator) Next() string {
	stamp := g.now().UnixMilli()
	if stamp <= g.last {
		stamp = g.last + 1
	}
	g.last = stamp
	return g.prefix + strconv.FormatInt(stamp, 10)
}

// Observe records an identifier issued in an earlier run so that Next never
// repeats it, even if the wall clock moved backwards between runs.
// Identifiers with a different prefix or a non-numeric suffix are ignored.
func (g *Generator) Observe(id string) {
	if !strings.HasPrefix(id, g.prefix) {
		return
	}
	stamp, err := strconv.ParseInt(strings.TrimPrefix(id, g.prefix), 10, 64)
	if err != nil {
		return
	}
	if stamp > g.last {
		g.last = stamp
	}
}
