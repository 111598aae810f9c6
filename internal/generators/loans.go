package generators

import (
	"math"

	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
)

// LoanGenerator builds loans once real estate is known: property-linked
// loans point at a distinct property and never exceed its value.
type LoanGenerator struct{}

func (g *LoanGenerator) Manual(ctx *Context, amounts model.AmountTree, p *model.Profile) error {
	items, err := expandAmounts("generators.loans", calibration.Loans, amounts)
	if err != nil {
		return err
	}

	p.Loans = make([]model.Loan, 0, len(items))
	for _, it := range items {
		loan := model.Loan{
			Type:               it.Subtype,
			Maturity:           ctx.yearsFromToday(g.manualYears(it)),
			RemainingPrincipal: it.Amount,
			Ownership:          ctx.ownership(),
		}
		if it.Category.PropertyLinked {
			if len(p.RealEstate) == 0 {
				ctx.warn("LOAN_UNLINKED", "%s has no property to finance", it.Subtype)
			} else {
				// The form has no property selector: manual mortgages finance the first property.
				g.link(&loan, 0, p.RealEstate[0])
			}
		}
		p.Loans = append(p.Loans, loan)
	}
	return nil
}

func (g *LoanGenerator) Auto(ctx *Context, counts model.CountTree, p *model.Profile) error {
	properties := len(p.RealEstate)
	clamp := func(c calibration.Category, n int) int {
		if !c.PropertyLinked || n <= properties {
			return n
		}
		ctx.warn("LOAN_COUNT_CLAMPED", "%d %s loans for %d properties, keeping %d", n, c.Name, properties, properties)
		return properties
	}

	items, err := drawItems(ctx, "generators.loans", calibration.Loans, counts, clamp)
	if err != nil {
		return err
	}

	targets := make(map[string][]int)
	for _, c := range calibration.Categories(calibration.Loans) {
		if !c.PropertyLinked {
			continue
		}
		n := 0
		for _, it := range items {
			if it.Category.Name == c.Name {
				n++
			}
		}
		targets[c.Name] = sampling.Distinct(ctx.Rand, properties, n)
	}

	p.Loans = make([]model.Loan, 0, len(items))
	for _, it := range items {
		v, err := ctx.amount(it.Category.Amount)
		if err != nil {
			return errors.Wrapf(err, "amount of %s", it.Subtype)
		}
		loan := model.Loan{
			Type:               it.Subtype,
			Maturity:           ctx.yearsFromToday(g.drawYears(ctx, it)),
			RemainingPrincipal: v,
			Ownership:          ctx.ownership(),
		}
		if it.Category.PropertyLinked {
			idx := targets[it.Category.Name][0]
			targets[it.Category.Name] = targets[it.Category.Name][1:]
			g.link(&loan, idx, p.RealEstate[idx])
		}
		p.Loans = append(p.Loans, loan)
	}
	return nil
}

// link ties a loan to a property and caps its principal at the property value.
func (g *LoanGenerator) link(loan *model.Loan, idx int, property model.RealEstateAsset) {
	loan.LinkedProperty = &idx
	loan.RemainingPrincipal = math.Min(loan.RemainingPrincipal, property.Value)
}

func (g *LoanGenerator) manualYears(it item) int {
	if calibration.PerpetualLoans[it.Subtype] {
		return calibration.PerpetualYears
	}
	return it.Category.Horizon.ManualYears
}

func (g *LoanGenerator) drawYears(ctx *Context, it item) int {
	if calibration.PerpetualLoans[it.Subtype] {
		return calibration.PerpetualYears
	}
	h := it.Category.Horizon
	return sampling.IntBetween(ctx.Rand, h.MinYears, h.MaxYears)
}
