// Package calibration holds the empirical distributions used to draw
// synthetic households. Tables are static data looked up by domain and
// category, never by composed string keys.
package calibration

import (
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
)

type bp[T any] = sampling.Breakpoint[T]

// Domain tags a family of owned records.
type Domain int

const (
	Financial Domain = iota
	RealEstate
	Professional
	Loans
)

func (d Domain) String() string {
	switch d {
	case Financial:
		return "fin"
	case RealEstate:
		return "immo"
	case Professional:
		return "pro"
	case Loans:
		return "emprunt"
	default:
		return "unknown"
	}
}

// Horizon bounds the maturity of a loan category, in years.
type Horizon struct {
	MinYears    int
	MaxYears    int
	ManualYears int
}

// Category describes one product family of a domain.
type Category struct {
	Name    string
	Count   sampling.Table[int]
	Subtype sampling.Table[string]
	Amount  sampling.Range
	// Manual lists the subtype codes accepted in manual amount trees.
	Manual []string
	// Aliases maps spellings of the client form onto catalog codes.
	Aliases map[string]string

	// Loans only.
	Horizon        Horizon
	PropertyLinked bool
}

// Accepts reports whether code is a known subtype of the category.
func (c Category) Accepts(code string) bool {
	for _, s := range c.Manual {
		if s == code {
			return true
		}
	}
	for _, s := range c.Subtype.Outcomes() {
		if s == code {
			return true
		}
	}
	_, ok := c.Aliases[code]
	return ok
}

// Canonical returns the catalog code of a form spelling, or code itself.
func (c Category) Canonical(code string) string {
	if canonical, ok := c.Aliases[code]; ok {
		return canonical
	}
	return code
}

// Categories returns the categories of a domain in generation order.
func Categories(d Domain) []Category {
	switch d {
	case Financial:
		return financial
	case RealEstate:
		return realEstate
	case Professional:
		return professional
	case Loans:
		return loans
	default:
		return nil
	}
}

// Lookup finds a category of a domain by name.
func Lookup(d Domain, name string) (Category, bool) {
	for _, c := range Categories(d) {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Household composition and personal situation.
var (
	Civility = sampling.MustTable(
		bp[string]{Upper: 0.484, Outcome: model.CivilityMr},
		bp[string]{Upper: 1.0, Outcome: model.CivilityMrs},
	)

	Children = sampling.MustTable(
		bp[int]{Upper: 0.25, Outcome: 0},
		bp[int]{Upper: 0.52, Outcome: 1},
		bp[int]{Upper: 0.84, Outcome: 2},
		bp[int]{Upper: 0.96, Outcome: 3},
		bp[int]{Upper: 1.0, Outcome: 4},
	)

	UnionType = sampling.MustTable(
		bp[string]{Upper: 0.23, Outcome: model.UnionSingle},
		bp[string]{Upper: 0.30, Outcome: model.UnionDivorced},
		bp[string]{Upper: 0.38, Outcome: model.UnionWidowed},
		bp[string]{Upper: 0.50, Outcome: model.UnionFree},
		bp[string]{Upper: 0.54, Outcome: model.UnionCivil},
		bp[string]{Upper: 1.0, Outcome: model.UnionMarried},
	)

	MaritalRegime = sampling.MustTable(
		bp[string]{Upper: 0.85, Outcome: model.RegimeCommunityGains},
		bp[string]{Upper: 1.0, Outcome: model.RegimeSeparate},
	)
)

const (
	MinAge        = 25
	MaxAge        = 70
	RetirementAge = 64
	// DependentAge is the age under which a child still counts for the tax household.
	DependentAge = 25
)

// ChildBirthAges is the parent's age at the birth of each successive child.
// Parents younger than the i-th entry have fewer than i+1 children.
var ChildBirthAges = []int{28, 31, 33, 35}

// ParentAgeAtBirth returns the parent's age when child i (0-based) was born.
func ParentAgeAtBirth(i int) int {
	if i < len(ChildBirthAges) {
		return ChildBirthAges[i]
	}
	last := ChildBirthAges[len(ChildBirthAges)-1]
	return last + 2*(i-len(ChildBirthAges)+1)
}

// Cashflow ranges, yearly amounts in euros.
var (
	ActivityIncome = sampling.Range{Min: 60000, Max: 1000000}
	PensionIncome  = sampling.Range{Min: 20000, Max: 300000}
	Expenses       = sampling.Range{Min: 3000, Max: 8000}
)

// Income share of the client in a couple, in percent.
const (
	MinIncomeSharePct = 50
	MaxIncomeSharePct = 100
)
