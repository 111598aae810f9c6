package generators

import (
	"math"

	"github.com/shopspring/decimal"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
	"patrimony-engine/internal/simerr"
)

// FiscalParts is the tax-household size of a household with the given
// number of dependent children.
func FiscalParts(isSingle bool, dependents int) float64 {
	parts := 1.0
	if !isSingle {
		parts++
	}
	parts += 0.5 * float64(min(dependents, 2))
	parts += float64(max(dependents-2, 0))
	return parts
}

// CashflowFromInput converts the cashflow section of a manual request.
// A missing part count is computed from the personal situation.
func CashflowFromInput(in model.CashflowInput, p model.Personal, isSingle bool) (model.Cashflow, error) {
	const op = "generators.cashflow"

	fields := []struct {
		name string
		v    decimal.Decimal
	}{
		{"revenusActivite", in.ActivityIncome},
		{"pensionRetraite", in.PensionIncome},
		{"depensesCourantes", in.Expenses},
		{"revenusActiviteConjoint", in.PartnerActivityIncome},
		{"pensionRetraiteConjoint", in.PartnerPensionIncome},
	}
	for _, f := range fields {
		if f.v.IsNegative() {
			return model.Cashflow{}, simerr.Validation(op, "%s is negative: %s", f.name, f.v)
		}
	}
	if isSingle && !(in.PartnerActivityIncome.IsZero() && in.PartnerPensionIncome.IsZero()) {
		return model.Cashflow{}, simerr.Validation(op, "single household cannot declare partner income")
	}

	cf := model.Cashflow{
		ActivityIncome:        in.ActivityIncome.InexactFloat64(),
		PensionIncome:         in.PensionIncome.InexactFloat64(),
		Expenses:              in.Expenses.InexactFloat64(),
		PartnerActivityIncome: in.PartnerActivityIncome.InexactFloat64(),
		PartnerPensionIncome:  in.PartnerPensionIncome.InexactFloat64(),
	}
	if in.FiscalParts != nil {
		if in.FiscalParts.LessThan(decimal.NewFromInt(1)) {
			return model.Cashflow{}, simerr.Validation(op, "nbPartFiscal must be at least 1, got %s", in.FiscalParts)
		}
		cf.FiscalParts = in.FiscalParts.InexactFloat64()
	} else {
		cf.FiscalParts = FiscalParts(isSingle, DependentChildren(p.Age, p.Children))
	}
	return cf, nil
}

// RandomCashflow draws the incomes and expenses of a household and sets
// ctx.Reference to the household income every asset amount correlates with.
// Retired clients draw a pension instead of an activity income.
func RandomCashflow(ctx *Context, p model.Personal) model.Cashflow {
	share := 1.0
	if !ctx.IsSingle {
		share = float64(sampling.IntBetween(ctx.Rand, calibration.MinIncomeSharePct, calibration.MaxIncomeSharePct)) / 100
	}

	income := calibration.ActivityIncome
	retired := p.Age >= calibration.RetirementAge
	if retired {
		income = calibration.PensionIncome
	}
	household := float64(sampling.IntBetween(ctx.Rand, int(income.Min), int(income.Max)))
	ctx.Reference = sampling.Reference{Value: household, Range: income}

	own := share * household
	partner := own * (1 - share) / share

	var cf model.Cashflow
	cf.Expenses = float64(sampling.IntBetween(ctx.Rand, int(calibration.Expenses.Min), int(calibration.Expenses.Max)))
	cf.FiscalParts = FiscalParts(ctx.IsSingle, DependentChildren(p.Age, p.Children))
	if retired {
		cf.PensionIncome, cf.PartnerPensionIncome = own, roundCents(partner)
	} else {
		cf.ActivityIncome, cf.PartnerActivityIncome = own, roundCents(partner)
	}
	return cf
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
