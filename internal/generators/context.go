// Package generators builds the typed records of each patrimony domain,
// either from the amounts a user typed in or from calibrated random draws.
package generators

import (
	"fmt"
	"math/rand"
	"time"

	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
)

// Context is shared by the generators of one simulation run.
// It is not safe for concurrent use.
type Context struct {
	Rand *rand.Rand
	// Today anchors loan maturities.
	Today    time.Time
	IsSingle bool
	// Reference is the household income every drawn amount correlates with.
	Reference sampling.Reference

	warnings []model.CalculationMessage
}

// Warnings returns the non-blocking messages raised so far.
func (c *Context) Warnings() []model.CalculationMessage {
	return c.warnings
}

func (c *Context) warn(code, format string, args ...any) {
	c.warnings = append(c.warnings, model.Warning(code, fmt.Sprintf(format, args...)))
}

func (c *Context) ownership() model.Ownership {
	return model.OwnershipFor(c.IsSingle)
}

func (c *Context) amount(r sampling.Range) (float64, error) {
	return sampling.Correlated(c.Rand, c.Reference, r)
}

// yearsFromToday returns the calendar date n years after Today.
func (c *Context) yearsFromToday(n int) time.Time {
	y, m, d := c.Today.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(n, 0, 0)
}
