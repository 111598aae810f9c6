package generators

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/simerr"
)

// item is one record to build: a subtype of a category, with its amount when
// the amount was typed in.
type item struct {
	Category calibration.Category
	Subtype  string
	Amount   float64
	// Pinned marks subtypes chosen by the user rather than drawn.
	Pinned bool
}

// subtypeOrder lists the subtype codes of a category in catalog order,
// followed by the form spellings of its aliases.
func subtypeOrder(c calibration.Category) []string {
	order := c.Subtype.Outcomes()
	for _, code := range c.Manual {
		if !contains(order, code) {
			order = append(order, code)
		}
	}
	aliases := make([]string, 0, len(c.Aliases))
	for code := range c.Aliases {
		aliases = append(aliases, code)
	}
	sort.Strings(aliases)
	return append(order, aliases...)
}

// checkKeys rejects unknown categories and subtypes. Leaves that hold
// nothing may use any key: the client form lists every code it knows.
func checkKeys[V any](op string, d calibration.Domain, tree map[string]map[string]V, holds func(V) bool) error {
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		subtypes := make([]string, 0, len(tree[name]))
		for code, v := range tree[name] {
			if holds(v) {
				subtypes = append(subtypes, code)
			}
		}
		if len(subtypes) == 0 {
			continue
		}
		sort.Strings(subtypes)

		cat, ok := calibration.Lookup(d, name)
		if !ok {
			return simerr.Validation(op, "unknown %s category %q", d, name)
		}
		for _, code := range subtypes {
			if !cat.Accepts(code) {
				return simerr.Validation(op, "unknown %s subtype %q in category %q", d, code, name)
			}
		}
	}
	return nil
}

func holdsAmount(amounts []decimal.Decimal) bool {
	for _, a := range amounts {
		if !a.IsZero() {
			return true
		}
	}
	return false
}

func holdsCount(n int) bool { return n != 0 }

// expandAmounts flattens a manual amount tree. Zero amounts mean "not held"
// and are dropped.
func expandAmounts(op string, d calibration.Domain, tree model.AmountTree) ([]item, error) {
	if err := checkKeys(op, d, tree, holdsAmount); err != nil {
		return nil, err
	}

	var items []item
	for _, cat := range calibration.Categories(d) {
		bySubtype := tree[cat.Name]
		if len(bySubtype) == 0 {
			continue
		}
		for _, code := range subtypeOrder(cat) {
			for _, amount := range bySubtype[code] {
				if amount.IsNegative() {
					return nil, simerr.Validation(op, "negative amount %s for %s/%s", amount, cat.Name, code)
				}
				if amount.IsZero() {
					continue
				}
				items = append(items, item{
					Category: cat,
					Subtype:  cat.Canonical(code),
					Amount:   amount.InexactFloat64(),
					Pinned:   true,
				})
			}
		}
	}
	return items, nil
}

// drawItems picks how many records of each category the household holds and
// their subtypes. Categories present in counts skip the draws. clamp may
// lower a count, e.g. when fewer properties than mortgages exist.
func drawItems(ctx *Context, op string, d calibration.Domain, counts model.CountTree, clamp func(calibration.Category, int) int) ([]item, error) {
	if err := checkKeys(op, d, counts, holdsCount); err != nil {
		return nil, err
	}

	cats := calibration.Categories(d)
	nb := make([]int, len(cats))
	for i, cat := range cats {
		if pinned, ok := counts[cat.Name]; ok {
			for code, n := range pinned {
				if n < 0 {
					return nil, simerr.Validation(op, "negative count %d for %s/%s", n, cat.Name, code)
				}
				nb[i] += n
			}
			continue
		}
		n, err := cat.Count.Draw(ctx.Rand)
		if err != nil {
			return nil, errors.Wrapf(err, "count of %s", cat.Name)
		}
		nb[i] = n
	}

	var items []item
	for i, cat := range cats {
		n := nb[i]
		if clamp != nil {
			n = clamp(cat, n)
		}
		if pinned, ok := counts[cat.Name]; ok {
			for _, code := range subtypeOrder(cat) {
				for k := 0; k < pinned[code] && n > 0; k++ {
					items = append(items, item{Category: cat, Subtype: cat.Canonical(code), Pinned: true})
					n--
				}
			}
			continue
		}
		for k := 0; k < n; k++ {
			code, err := cat.Subtype.Draw(ctx.Rand)
			if err != nil {
				return nil, errors.Wrapf(err, "subtype of %s", cat.Name)
			}
			items = append(items, item{Category: cat, Subtype: code})
		}
	}
	return items, nil
}
