package generators

import (
	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
)

type ProfessionalGenerator struct{}

func (g *ProfessionalGenerator) Manual(ctx *Context, amounts model.AmountTree, p *model.Profile) error {
	items, err := expandAmounts("generators.professional", calibration.Professional, amounts)
	if err != nil {
		return err
	}
	p.Professional = make([]model.ProfessionalAsset, 0, len(items))
	for _, it := range items {
		p.Professional = append(p.Professional, model.ProfessionalAsset{
			Type:      it.Subtype,
			Value:     it.Amount,
			Ownership: ctx.ownership(),
		})
	}
	return nil
}

func (g *ProfessionalGenerator) Auto(ctx *Context, counts model.CountTree, p *model.Profile) error {
	items, err := drawItems(ctx, "generators.professional", calibration.Professional, counts, nil)
	if err != nil {
		return err
	}
	p.Professional = make([]model.ProfessionalAsset, 0, len(items))
	for _, it := range items {
		v, err := ctx.amount(it.Category.Amount)
		if err != nil {
			return errors.Wrapf(err, "amount of %s", it.Subtype)
		}
		p.Professional = append(p.Professional, model.ProfessionalAsset{
			Type:      it.Subtype,
			Value:     v,
			Ownership: ctx.ownership(),
		})
	}
	return nil
}
