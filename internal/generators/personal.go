package generators

import (
	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
	"patrimony-engine/internal/simerr"
)

const (
	defaultAge       = 40
	defaultUnionType = model.UnionSingle
	// regimeAlias is the form value for "no regime".
	regimeAlias = "aucun"
)

// PersonalFromInput normalizes the personal section of a manual request and
// resolves the household composition.
func PersonalFromInput(in model.PersonalInput, isSingle *bool) (model.Personal, bool, error) {
	const op = "generators.personal"

	p := model.Personal{
		Civility:      in.Civility,
		Age:           defaultAge,
		Children:      in.Children,
		UnionType:     in.UnionType,
		MaritalRegime: in.MaritalRegime,
	}
	if p.Civility == "" {
		p.Civility = model.CivilityMr
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if p.UnionType == "" {
		p.UnionType = defaultUnionType
	}
	if !contains(model.UnionTypes, p.UnionType) {
		return model.Personal{}, false, simerr.Validation(op, "unknown union type %q", p.UnionType)
	}

	switch {
	case p.UnionType != model.UnionMarried:
		p.MaritalRegime = model.RegimeNotApplicable
	case p.MaritalRegime == "" || p.MaritalRegime == regimeAlias:
		p.MaritalRegime = model.RegimeSeparate
	case !contains(model.Regimes, p.MaritalRegime) || p.MaritalRegime == model.RegimeNotApplicable:
		return model.Personal{}, false, simerr.Validation(op, "invalid marital regime %q for a married household", p.MaritalRegime)
	}

	single := model.LivesAlone(p.UnionType)
	if isSingle != nil && *isSingle != single {
		return model.Personal{}, false, simerr.Validation(op, "isCelib=%t contradicts union type %q", *isSingle, p.UnionType)
	}
	return p, single, nil
}

// RandomPersonal draws the personal situation of a household.
func RandomPersonal(ctx *Context) (model.Personal, error) {
	var (
		p   model.Personal
		err error
	)
	if p.Civility, err = calibration.Civility.Draw(ctx.Rand); err != nil {
		return p, errors.Wrap(err, "civility")
	}
	p.Age = sampling.IntBetween(ctx.Rand, calibration.MinAge, calibration.MaxAge)
	if p.Children, err = calibration.Children.Draw(ctx.Rand); err != nil {
		return p, errors.Wrap(err, "children")
	}
	if limit := MaxChildren(p.Age); p.Children > limit {
		p.Children = limit
	}
	if p.UnionType, err = calibration.UnionType.Draw(ctx.Rand); err != nil {
		return p, errors.Wrap(err, "union type")
	}

	p.MaritalRegime = model.RegimeNotApplicable
	if p.UnionType == model.UnionMarried {
		if p.MaritalRegime, err = calibration.MaritalRegime.Draw(ctx.Rand); err != nil {
			return p, errors.Wrap(err, "marital regime")
		}
	}
	return p, nil
}

// MaxChildren is the number of children a parent of the given age can have
// had by the calibrated birth ages.
func MaxChildren(age int) int {
	n := 0
	for _, at := range calibration.ChildBirthAges {
		if age >= at {
			n++
		}
	}
	return n
}

// DependentChildren counts the children still under the dependent age,
// assuming child i was born when the parent was ParentAgeAtBirth(i).
func DependentChildren(parentAge, children int) int {
	n := 0
	for i := 0; i < children; i++ {
		if parentAge-calibration.ParentAgeAtBirth(i) < calibration.DependentAge {
			n++
		}
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
