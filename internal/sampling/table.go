// Package sampling turns uniform draws into calibrated outcomes.
package sampling

import (
	"fmt"
	"math/rand"

	"patrimony-engine/internal/simerr"
)

// Breakpoint pairs a cumulative probability with the outcome selected
// when a draw falls below it.
type Breakpoint[T any] struct {
	Upper   float64
	Outcome T
}

// Table is an ascending list of breakpoints. The last breakpoint is 1.0.
type Table[T any] []Breakpoint[T]

// NewTable validates the breakpoints of a calibration table.
func NewTable[T any](bps ...Breakpoint[T]) (Table[T], error) {
	if len(bps) == 0 {
		return nil, simerr.Domain("sampling.table", "table has no breakpoints")
	}
	prev := 0.0
	for i, bp := range bps {
		if bp.Upper <= prev && i > 0 {
			return nil, simerr.Domain("sampling.table", "breakpoint %d (%v) is not above %v", i, bp.Upper, prev)
		}
		if bp.Upper <= 0 || bp.Upper > 1 {
			return nil, simerr.Domain("sampling.table", "breakpoint %d (%v) outside (0, 1]", i, bp.Upper)
		}
		prev = bp.Upper
	}
	if prev != 1 {
		return nil, simerr.Domain("sampling.table", "last breakpoint is %v, want 1", prev)
	}
	return Table[T](bps), nil
}

// MustTable is NewTable for static calibration data; it panics on a bad table.
func MustTable[T any](bps ...Breakpoint[T]) Table[T] {
	t, err := NewTable(bps...)
	if err != nil {
		panic(fmt.Sprintf("sampling: %v", err))
	}
	return t
}

// Single is a table that always yields the same outcome.
func Single[T any](outcome T) Table[T] {
	return Table[T]{{Upper: 1, Outcome: outcome}}
}

// Pick returns the outcome of the first breakpoint strictly above v.
// Draws at or past the last breakpoint yield the last outcome.
func (t Table[T]) Pick(v float64) (T, error) {
	var zero T
	if v < 0 || v > 1 {
		return zero, simerr.Domain("sampling.pick", "value %v outside [0, 1]", v)
	}
	if len(t) == 0 {
		return zero, simerr.Domain("sampling.pick", "empty table")
	}
	for _, bp := range t {
		if v < bp.Upper {
			return bp.Outcome, nil
		}
	}
	return t[len(t)-1].Outcome, nil
}

// Draw picks an outcome with a fresh uniform draw from rng.
func (t Table[T]) Draw(rng *rand.Rand) (T, error) {
	return t.Pick(rng.Float64())
}

// Outcomes lists the outcomes of the table in breakpoint order.
func (t Table[T]) Outcomes() []T {
	out := make([]T, len(t))
	for i, bp := range t {
		out[i] = bp.Outcome
	}
	return out
}
