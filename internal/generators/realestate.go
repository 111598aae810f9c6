package generators

import (
	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
)

type RealEstateGenerator struct{}

func (g *RealEstateGenerator) Manual(ctx *Context, amounts model.AmountTree, p *model.Profile) error {
	items, err := expandAmounts("generators.realestate", calibration.RealEstate, amounts)
	if err != nil {
		return err
	}
	p.RealEstate = make([]model.RealEstateAsset, 0, len(items))
	for _, it := range items {
		p.RealEstate = append(p.RealEstate, g.asset(it, it.Amount, ctx.ownership()))
	}
	return nil
}

// Auto draws properties. Drawn rental subtypes then draw their dispositif;
// pinned form codes such as "RL-Nue Pinel" carry it.
func (g *RealEstateGenerator) Auto(ctx *Context, counts model.CountTree, p *model.Profile) error {
	items, err := drawItems(ctx, "generators.realestate", calibration.RealEstate, counts, nil)
	if err != nil {
		return err
	}
	p.RealEstate = make([]model.RealEstateAsset, 0, len(items))
	for _, it := range items {
		v, err := ctx.amount(it.Category.Amount)
		if err != nil {
			return errors.Wrapf(err, "amount of %s", it.Subtype)
		}
		asset := g.asset(it, v, ctx.ownership())
		if !it.Pinned {
			if table, ok := calibration.Dispositifs(it.Subtype); ok {
				if asset.Dispositif, err = table.Draw(ctx.Rand); err != nil {
					return errors.Wrapf(err, "dispositif of %s", it.Subtype)
				}
			}
		}
		p.RealEstate = append(p.RealEstate, asset)
	}
	return nil
}

func (g *RealEstateGenerator) asset(it item, value float64, own model.Ownership) model.RealEstateAsset {
	typ, dispositif := calibration.ManualRental(it.Subtype)
	return model.RealEstateAsset{
		Type:       typ,
		Dispositif: dispositif,
		Value:      value,
		Ownership:  own,
	}
}
