package generators

import (
	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
)

type FinancialGenerator struct{}

func (g *FinancialGenerator) Manual(ctx *Context, amounts model.AmountTree, p *model.Profile) error {
	items, err := expandAmounts("generators.financial", calibration.Financial, amounts)
	if err != nil {
		return err
	}
	p.Financial = make([]model.FinancialAsset, 0, len(items))
	for _, it := range items {
		p.Financial = append(p.Financial, model.FinancialAsset{
			Type:      it.Subtype,
			Value:     it.Amount,
			Ownership: ctx.ownership(),
		})
	}
	return nil
}

func (g *FinancialGenerator) Auto(ctx *Context, counts model.CountTree, p *model.Profile) error {
	items, err := drawItems(ctx, "generators.financial", calibration.Financial, counts, nil)
	if err != nil {
		return err
	}
	p.Financial = make([]model.FinancialAsset, 0, len(items))
	for _, it := range items {
		v, err := ctx.amount(it.Category.Amount)
		if err != nil {
			return errors.Wrapf(err, "amount of %s", it.Subtype)
		}
		p.Financial = append(p.Financial, model.FinancialAsset{
			Type:      it.Subtype,
			Value:     v,
			Ownership: ctx.ownership(),
		})
	}
	return nil
}
