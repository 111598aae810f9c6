package generators

import (
	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
)

// Generator builds the records of one asset domain into a profile.
// Manual converts typed-in amounts; Auto draws records from calibration,
// honoring any pinned counts.
type Generator interface {
	Manual(ctx *Context, amounts model.AmountTree, p *model.Profile) error
	Auto(ctx *Context, counts model.CountTree, p *model.Profile) error
}

var registry = map[calibration.Domain]Generator{
	calibration.Financial:    &FinancialGenerator{},
	calibration.RealEstate:   &RealEstateGenerator{},
	calibration.Professional: &ProfessionalGenerator{},
	calibration.Loans:        &LoanGenerator{},
}

// Order is the generation order of the asset domains. Loans come last since
// they link to real-estate records.
var Order = []calibration.Domain{
	calibration.Financial,
	calibration.RealEstate,
	calibration.Professional,
	calibration.Loans,
}

func Get(d calibration.Domain) (Generator, bool) {
	g, ok := registry[d]
	return g, ok
}
