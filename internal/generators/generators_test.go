package generators

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/simerr"
)

var today = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newContext(seed int64, single bool) *Context {
	return &Context{Rand: rand.New(rand.NewSource(seed)), Today: today, IsSingle: single}
}

func amounts(v ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(v))
	for i, x := range v {
		out[i] = decimal.NewFromInt(x)
	}
	return out
}

func autoProfile(t *testing.T, seed int64, counts model.Counts) (*model.Profile, *Context) {
	t.Helper()
	ctx := newContext(seed, false)
	personal, err := RandomPersonal(ctx)
	require.NoError(t, err)
	ctx.IsSingle = model.LivesAlone(personal.UnionType)

	p := &model.Profile{IsSingle: ctx.IsSingle, Personal: personal}
	p.Cashflow = RandomCashflow(ctx, personal)

	trees := map[calibration.Domain]model.CountTree{
		calibration.Financial:    counts.Financial,
		calibration.RealEstate:   counts.RealEstate,
		calibration.Professional: counts.Professional,
		calibration.Loans:        counts.Loans,
	}
	for _, d := range Order {
		g, ok := Get(d)
		require.True(t, ok)
		require.NoError(t, g.Auto(ctx, trees[d], p))
	}
	return p, ctx
}

func TestFinancialManualLivretA(t *testing.T) {
	ctx := newContext(1, true)
	p := &model.Profile{}

	err := (&FinancialGenerator{}).Manual(ctx, model.AmountTree{"LivretA": {"LivretA": amounts(18000)}}, p)
	require.NoError(t, err)

	require.Len(t, p.Financial, 1)
	assert.Equal(t, "LivretA", p.Financial[0].Type)
	assert.Equal(t, 18000.0, p.Financial[0].Value)
	assert.Equal(t, model.Ownership{Self: 1, Partner: 0}, p.Financial[0].Ownership)
}

func TestManualDropsZeroAmounts(t *testing.T) {
	p := &model.Profile{}
	err := (&FinancialGenerator{}).Manual(newContext(1, false), model.AmountTree{
		"LivretA": {"LivretA": amounts(0, 2500)},
		"PEA":     {"PEA": amounts(0)},
	}, p)
	require.NoError(t, err)

	require.Len(t, p.Financial, 1)
	assert.Equal(t, 2500.0, p.Financial[0].Value)
	assert.Equal(t, model.Ownership{Self: 0.5, Partner: 0.5}, p.Financial[0].Ownership)
}

func TestManualRejectsBadTrees(t *testing.T) {
	tests := []struct {
		name string
		tree model.AmountTree
	}{
		{"unknown category", model.AmountTree{"Bitcoin": {"BTC": amounts(10)}}},
		{"unknown subtype", model.AmountTree{"LivretA": {"LivretB": amounts(10)}}},
		{"unknown subtype among zeros", model.AmountTree{"LivretA": {"LivretB": amounts(0, 10)}}},
		{"negative amount", model.AmountTree{"LivretA": {"LivretA": amounts(-10)}}},
		{"negative amount under unknown key", model.AmountTree{"Bitcoin": {"BTC": amounts(-10)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&FinancialGenerator{}).Manual(newContext(1, true), tt.tree, &model.Profile{})
			require.Error(t, err)
			assert.True(t, simerr.IsKind(err, simerr.KindValidation))
		})
	}
}

func TestManualAcceptsFormTrees(t *testing.T) {
	p := &model.Profile{}
	err := (&FinancialGenerator{}).Manual(newContext(1, true), model.AmountTree{
		"LivretA": {"LivretA": amounts(18000), "LvretBleu": amounts(0)},
		"LDDS":    {"LDDS": amounts(0)},
		"Bitcoin": {"BTC": amounts(0)},
		"PEA":     {"PEA-Old": amounts(0)},
	}, p)
	require.NoError(t, err)
	require.Len(t, p.Financial, 1)
	assert.Equal(t, "LivretA", p.Financial[0].Type)
	assert.Equal(t, 18000.0, p.Financial[0].Value)

	p = &model.Profile{}
	err = (&FinancialGenerator{}).Manual(newContext(1, true), model.AmountTree{
		"LivretA": {"LvretBleu": amounts(4000)},
	}, p)
	require.NoError(t, err)
	require.Len(t, p.Financial, 1)
	assert.Equal(t, "LivretBleu", p.Financial[0].Type)
}

func TestLoansManualFormSpellings(t *testing.T) {
	p := &model.Profile{}
	err := (&LoanGenerator{}).Manual(newContext(1, true), model.AmountTree{
		"PretPro": {
			"ProTxFixe":        amounts(40000),
			"ProTxFixeDifféré": amounts(0),
			"ProTxFixeInFine":  amounts(0),
			"ProTxVar":         amounts(0),
			"Lease":            amounts(0),
			"CCA":              amounts(0),
		},
	}, p)
	require.NoError(t, err)
	require.Len(t, p.Loans, 1)
	assert.Equal(t, "Pro TxFixe", p.Loans[0].Type)
	assert.Equal(t, 40000.0, p.Loans[0].RemainingPrincipal)
	assert.Equal(t, 2033, p.Loans[0].Maturity.Year())

	p = &model.Profile{}
	err = (&LoanGenerator{}).Manual(newContext(1, true), model.AmountTree{
		"PretPro": {"ProTxFixe": amounts(0), "ProTxVar": amounts(0)},
	}, p)
	require.NoError(t, err)
	assert.Empty(t, p.Loans)
}

func TestProfessionalManualFormSpelling(t *testing.T) {
	p := &model.Profile{}
	err := (&ProfessionalGenerator{}).Manual(newContext(1, false), model.AmountTree{
		"Autres": {"Fond Commerce": amounts(90000), "Brevet": amounts(0)},
	}, p)
	require.NoError(t, err)
	require.Len(t, p.Professional, 1)
	assert.Equal(t, "Fonds Commerce", p.Professional[0].Type)
}

func TestRealEstateManualSplitsRentalCode(t *testing.T) {
	p := &model.Profile{}
	err := (&RealEstateGenerator{}).Manual(newContext(1, true), model.AmountTree{
		"RP": {"RP": amounts(300000)},
		"RL": {"RL-Nue Pinel": amounts(150000), "RL-Nue": amounts(90000)},
	}, p)
	require.NoError(t, err)

	require.Len(t, p.RealEstate, 3)
	assert.Equal(t, model.RealEstateAsset{Type: "RP", Dispositif: model.DispositifNone, Value: 300000, Ownership: model.Ownership{Self: 1}}, p.RealEstate[0])
	assert.Equal(t, "RL-Nue", p.RealEstate[1].Type)
	assert.Equal(t, model.DispositifNone, p.RealEstate[1].Dispositif)
	assert.Equal(t, "RL-Nue", p.RealEstate[2].Type)
	assert.Equal(t, "Pinel", p.RealEstate[2].Dispositif)
}

func TestLoansManualLinkAndCap(t *testing.T) {
	ctx := newContext(1, false)
	p := &model.Profile{RealEstate: []model.RealEstateAsset{{Type: "RP", Value: 200000}}}

	err := (&LoanGenerator{}).Manual(ctx, model.AmountTree{
		"PretImmo": {"Immo TxFixe": amounts(250000), "Immo PVH": amounts(50000)},
		"PretAuto": {"Auto": amounts(12000)},
	}, p)
	require.NoError(t, err)
	require.Len(t, p.Loans, 3)

	fixed := p.Loans[0]
	assert.Equal(t, "Immo TxFixe", fixed.Type)
	assert.Equal(t, 0, fixed.LinkedIndex())
	assert.Equal(t, 200000.0, fixed.RemainingPrincipal)
	assert.Equal(t, time.Date(2046, 3, 15, 0, 0, 0, 0, time.UTC), fixed.Maturity)

	pvh := p.Loans[1]
	assert.Equal(t, "Immo PVH", pvh.Type)
	assert.Equal(t, 0, pvh.LinkedIndex())
	assert.Equal(t, 2116, pvh.Maturity.Year())

	car := p.Loans[2]
	assert.Equal(t, -1, car.LinkedIndex())
	assert.Equal(t, 12000.0, car.RemainingPrincipal)
	assert.Equal(t, 2031, car.Maturity.Year())
}

func TestLoansManualWithoutProperty(t *testing.T) {
	ctx := newContext(1, true)
	p := &model.Profile{}

	err := (&LoanGenerator{}).Manual(ctx, model.AmountTree{"PretImmo": {"Immo TxFixe": amounts(100000)}}, p)
	require.NoError(t, err)

	require.Len(t, p.Loans, 1)
	assert.Nil(t, p.Loans[0].LinkedProperty)
	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, "LOAN_UNLINKED", ctx.Warnings()[0].Code)
}

func TestAutoProfileInvariants(t *testing.T) {
	horizons := map[string]calibration.Horizon{}
	for _, c := range calibration.Categories(calibration.Loans) {
		for _, code := range c.Subtype.Outcomes() {
			horizons[code] = c.Horizon
		}
	}

	for seed := int64(0); seed < 300; seed++ {
		p, _ := autoProfile(t, seed, model.Counts{})

		assert.Equal(t, model.LivesAlone(p.Personal.UnionType), p.IsSingle)
		assert.GreaterOrEqual(t, p.Personal.Age, calibration.MinAge)
		assert.LessOrEqual(t, p.Personal.Age, calibration.MaxAge)
		assert.LessOrEqual(t, p.Personal.Children, MaxChildren(p.Personal.Age))
		if p.Personal.UnionType != model.UnionMarried {
			assert.Equal(t, model.RegimeNotApplicable, p.Personal.MaritalRegime)
		}

		var shares []model.Ownership
		for _, a := range p.Financial {
			shares = append(shares, a.Ownership)
		}
		for _, a := range p.RealEstate {
			shares = append(shares, a.Ownership)
		}
		for _, a := range p.Professional {
			shares = append(shares, a.Ownership)
		}
		for _, l := range p.Loans {
			shares = append(shares, l.Ownership)
		}
		for _, s := range shares {
			assert.InDelta(t, 1.0, s.Self+s.Partner, 1e-9)
			if p.IsSingle {
				assert.Zero(t, s.Partner)
			}
		}

		seen := map[int]bool{}
		for _, l := range p.Loans {
			if l.LinkedProperty == nil {
				continue
			}
			idx := *l.LinkedProperty
			require.True(t, idx >= 0 && idx < len(p.RealEstate), "seed %d: link %d out of range", seed, idx)
			assert.LessOrEqual(t, l.RemainingPrincipal, p.RealEstate[idx].Value)
			assert.False(t, seen[idx], "seed %d: property %d financed twice", seed, idx)
			seen[idx] = true
		}

		for _, l := range p.Loans {
			years := l.Maturity.Year() - today.Year()
			if calibration.PerpetualLoans[l.Type] {
				assert.Equal(t, calibration.PerpetualYears, years, "seed %d: %s", seed, l.Type)
				continue
			}
			h, ok := horizons[l.Type]
			require.True(t, ok, "seed %d: no horizon for %s", seed, l.Type)
			assert.GreaterOrEqual(t, years, h.MinYears, "seed %d: %s", seed, l.Type)
			assert.LessOrEqual(t, years, h.MaxYears, "seed %d: %s", seed, l.Type)
		}
	}
}

func TestAutoPerpetualLoan(t *testing.T) {
	p, _ := autoProfile(t, 11, model.Counts{
		RealEstate: model.CountTree{"RP": {"RP": 1}},
		Loans:      model.CountTree{"PretImmo": {"Immo PVH": 1}},
	})

	var pvh []model.Loan
	for _, l := range p.Loans {
		if l.Type == "Immo PVH" {
			pvh = append(pvh, l)
		}
	}
	require.Len(t, pvh, 1)
	assert.Equal(t, time.Date(2116, 3, 15, 0, 0, 0, 0, time.UTC), pvh[0].Maturity)
	assert.NotNil(t, pvh[0].LinkedProperty)
}

func TestAutoIsReproducible(t *testing.T) {
	a, _ := autoProfile(t, 42, model.Counts{})
	b, _ := autoProfile(t, 42, model.Counts{})
	assert.Equal(t, a, b)
}

func TestAutoPinnedCounts(t *testing.T) {
	p, _ := autoProfile(t, 7, model.Counts{
		Financial:  model.CountTree{"LivretA": {"LivretA": 1}, "PEA": {"PEA": 0}},
		RealEstate: model.CountTree{"RP": {"RP": 1}, "RL": {"RL-Nue Pinel": 2}},
	})

	livrets, peas := 0, 0
	for _, a := range p.Financial {
		switch a.Type {
		case "LivretA":
			livrets++
		case "PEA":
			peas++
		}
	}
	assert.Equal(t, 1, livrets)
	assert.Zero(t, peas)

	var rentals []model.RealEstateAsset
	for _, a := range p.RealEstate {
		if a.Type == calibration.RentalBare {
			rentals = append(rentals, a)
		}
	}
	require.Len(t, rentals, 2)
	for _, r := range rentals {
		assert.Equal(t, "Pinel", r.Dispositif)
	}
}

func TestAutoClampsMortgages(t *testing.T) {
	noProperty := model.CountTree{}
	for _, c := range calibration.Categories(calibration.RealEstate) {
		noProperty[c.Name] = map[string]int{}
	}

	p, ctx := autoProfile(t, 3, model.Counts{
		RealEstate: noProperty,
		Loans:      model.CountTree{"PretImmo": {"Immo TxFixe": 2}},
	})

	assert.Empty(t, p.RealEstate)
	for _, l := range p.Loans {
		assert.NotContains(t, l.Type, "Immo")
	}
	codes := []string{}
	for _, w := range ctx.Warnings() {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, "LOAN_COUNT_CLAMPED")
}

func TestAutoRejectsNegativeCount(t *testing.T) {
	ctx := newContext(1, true)
	err := (&FinancialGenerator{}).Auto(ctx, model.CountTree{"LivretA": {"LivretA": -1}}, &model.Profile{})
	require.Error(t, err)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))
}

func TestFiscalParts(t *testing.T) {
	assert.Equal(t, 1.0, FiscalParts(true, 0))
	assert.Equal(t, 2.0, FiscalParts(false, 0))
	assert.Equal(t, 3.0, FiscalParts(false, 2))
	assert.Equal(t, 4.0, FiscalParts(false, 3))
	assert.Equal(t, 2.5, FiscalParts(true, 2))
}

func TestDependentChildren(t *testing.T) {
	// children born at 28, 31 and 33 are 12, 9 and 7
	assert.Equal(t, 3, DependentChildren(40, 3))
	// 32 and 29
	assert.Equal(t, 0, DependentChildren(60, 2))
	// 24, 21, 19, 17, 15
	assert.Equal(t, 5, DependentChildren(52, 5))
	assert.Equal(t, 0, DependentChildren(30, 0))
}

func TestMaxChildren(t *testing.T) {
	assert.Equal(t, 0, MaxChildren(27))
	assert.Equal(t, 1, MaxChildren(30))
	assert.Equal(t, 2, MaxChildren(31))
	assert.Equal(t, 3, MaxChildren(34))
	assert.Equal(t, 4, MaxChildren(50))
}

func TestPersonalFromInput(t *testing.T) {
	age := 45
	p, single, err := PersonalFromInput(model.PersonalInput{Age: &age, Children: 2, UnionType: model.UnionMarried}, nil)
	require.NoError(t, err)
	assert.False(t, single)
	assert.Equal(t, model.CivilityMr, p.Civility)
	assert.Equal(t, model.RegimeSeparate, p.MaritalRegime)

	p, single, err = PersonalFromInput(model.PersonalInput{UnionType: model.UnionCivil, MaritalRegime: model.RegimeUniversal}, nil)
	require.NoError(t, err)
	assert.False(t, single)
	assert.Equal(t, defaultAge, p.Age)
	assert.Equal(t, model.RegimeNotApplicable, p.MaritalRegime)

	_, single, err = PersonalFromInput(model.PersonalInput{}, nil)
	require.NoError(t, err)
	assert.True(t, single)
}

func TestPersonalFromInputErrors(t *testing.T) {
	no := false
	_, _, err := PersonalFromInput(model.PersonalInput{UnionType: model.UnionSingle}, &no)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))

	_, _, err = PersonalFromInput(model.PersonalInput{UnionType: "Fiancé"}, nil)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))

	_, _, err = PersonalFromInput(model.PersonalInput{UnionType: model.UnionMarried, MaritalRegime: "dot"}, nil)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))
}

func TestCashflowFromInput(t *testing.T) {
	personal := model.Personal{Age: 40, Children: 3}

	cf, err := CashflowFromInput(model.CashflowInput{ActivityIncome: decimal.NewFromInt(80000)}, personal, false)
	require.NoError(t, err)
	assert.Equal(t, 80000.0, cf.ActivityIncome)
	assert.Equal(t, 4.0, cf.FiscalParts)

	parts := decimal.NewFromFloat(2.5)
	cf, err = CashflowFromInput(model.CashflowInput{FiscalParts: &parts}, personal, false)
	require.NoError(t, err)
	assert.Equal(t, 2.5, cf.FiscalParts)

	_, err = CashflowFromInput(model.CashflowInput{PartnerActivityIncome: decimal.NewFromInt(1)}, personal, true)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))

	_, err = CashflowFromInput(model.CashflowInput{Expenses: decimal.NewFromInt(-1)}, personal, true)
	assert.True(t, simerr.IsKind(err, simerr.KindValidation))
}

func TestRandomCashflowRetired(t *testing.T) {
	ctx := newContext(5, false)
	cf := RandomCashflow(ctx, model.Personal{Age: 66})

	assert.Zero(t, cf.ActivityIncome)
	assert.Zero(t, cf.PartnerActivityIncome)
	assert.Greater(t, cf.PensionIncome, 0.0)
	assert.Equal(t, calibration.PensionIncome, ctx.Reference.Range)
	assert.InDelta(t, ctx.Reference.Value, cf.PensionIncome+cf.PartnerPensionIncome, 0.01)
}

func TestRandomCashflowSingleKeepsWholeIncome(t *testing.T) {
	ctx := newContext(5, true)
	cf := RandomCashflow(ctx, model.Personal{Age: 35})

	assert.Equal(t, ctx.Reference.Value, cf.ActivityIncome)
	assert.Zero(t, cf.PartnerActivityIncome)
	assert.GreaterOrEqual(t, cf.Expenses, calibration.Expenses.Min)
	assert.LessOrEqual(t, cf.Expenses, calibration.Expenses.Max)
}
