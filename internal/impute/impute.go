// Package impute fills a patrimony document template with the records of a
// simulated profile.
package impute

import (
	_ "embed"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/copystructure"
	"github.com/pkg/errors"

	"patrimony-engine/internal/model"
	"patrimony-engine/internal/taxonomy"
)

//go:embed vide.json
var defaultTemplate []byte

// Document sections and their detail lists.
const (
	SectionClient   = "Client"
	SectionCashflow = "Cashflow"
	SectionFin      = "Fin"
	SectionImmo     = "Immo"
	SectionPro      = "Pro"
	SectionEmprunt  = "Emprunt"

	DetailClient   = "PatClientDetail"
	DetailCashflow = "PatCashflowDetail"
	DetailFin      = "PatFinDetail"
	DetailImmo     = "PatImmoDetail"
	DetailPro      = "PatProDetail"
	DetailEmprunt  = "PatEmpruntDetail"
)

const dateLayout = "2006-01-02"

// DefaultTemplate returns a fresh copy of the built-in empty document.
func DefaultTemplate() (map[string]any, error) {
	return ParseTemplate(defaultTemplate)
}

// ParseTemplate decodes a JSON template document.
func ParseTemplate(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode template")
	}
	if doc == nil {
		return nil, errors.New("template is not a JSON object")
	}
	return doc, nil
}

// Impute returns a new document where every detail list of template holds
// one element per record of p. Elements start as a deep copy of the
// template's first element, so fields the profile does not own survive.
// Neither template nor p is modified.
func Impute(template map[string]any, p *model.Profile, valuation time.Time) (map[string]any, error) {
	copied, err := copystructure.Copy(template)
	if err != nil {
		return nil, errors.Wrap(err, "copy template")
	}
	doc, _ := copied.(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}
	f := filler{doc: doc, dateValue: valuation.Format(dateLayout)}

	if err := f.fill(SectionClient, DetailClient, 1, func(_ int, el map[string]any) {
		el["civilite"] = p.Personal.Civility
		el["dateNaissance"] = fmt.Sprintf("%04d-01-01", valuation.Year()-p.Personal.Age)
		el["nbEnfants"] = p.Personal.Children
		el["typeUnion"] = p.Personal.UnionType
		el["regimeMatrimonial"] = p.Personal.MaritalRegime
	}); err != nil {
		return nil, err
	}

	if err := f.fill(SectionCashflow, DetailCashflow, 1, func(_ int, el map[string]any) {
		cf := p.Cashflow
		el["revenusActivite"] = cf.ActivityIncome
		el["pensionRetraite"] = cf.PensionIncome
		el["depensesCourantes"] = cf.Expenses
		el["revenusActiviteConjoint"] = cf.PartnerActivityIncome
		el["pensionRetraiteConjoint"] = cf.PartnerPensionIncome
		el["nbPartFiscal"] = cf.FiscalParts
	}); err != nil {
		return nil, err
	}

	if err := f.fill(SectionFin, DetailFin, len(p.Financial), func(i int, el map[string]any) {
		a := p.Financial[i]
		el["typeProd"] = a.Type
		el["catProd"] = taxonomy.Financial(a.Type)
		f.holding(el, a.Value, a.Ownership)
	}); err != nil {
		return nil, err
	}

	if err := f.fill(SectionImmo, DetailImmo, len(p.RealEstate), func(i int, el map[string]any) {
		a := p.RealEstate[i]
		el["typeImmo"] = a.Type
		el["catImmo"] = taxonomy.RealEstate(a.Type)
		el["dispositif"] = a.Dispositif
		f.holding(el, a.Value, a.Ownership)
	}); err != nil {
		return nil, err
	}

	if err := f.fill(SectionPro, DetailPro, len(p.Professional), func(i int, el map[string]any) {
		a := p.Professional[i]
		el["typeBienPro"] = a.Type
		el["catBienPro"] = taxonomy.Professional(a.Type)
		f.holding(el, a.Value, a.Ownership)
	}); err != nil {
		return nil, err
	}

	if err := f.fill(SectionEmprunt, DetailEmprunt, len(p.Loans), func(i int, el map[string]any) {
		l := p.Loans[i]
		el["typeEmprunt"] = l.Type
		el["catEmprunt"] = taxonomy.Loan(l.Type)
		el["dtFin"] = l.Maturity.Format(dateLayout)
		el["montantRestantDu"] = l.RemainingPrincipal
		// quotePart mirrors the raw amount, not the client's share.
		el["quotePart"] = l.RemainingPrincipal
		el["pctEmprunt"] = l.Ownership.Self
		el["pctEmpruntConjoint"] = l.Ownership.Partner
		el["ImmoLie"] = l.LinkedIndex()
		el["dateValue"] = f.dateValue
	}); err != nil {
		return nil, err
	}

	return doc, nil
}

type filler struct {
	doc       map[string]any
	dateValue string
}

// fill replaces section.detail with n elements built by set on copies of
// the template's first element.
func (f filler) fill(section, detail string, n int, set func(i int, el map[string]any)) error {
	sec, ok := f.doc[section].(map[string]any)
	if !ok {
		sec = map[string]any{}
		f.doc[section] = sec
	}

	base := map[string]any{}
	if list, ok := sec[detail].([]any); ok && len(list) > 0 {
		if el, ok := list[0].(map[string]any); ok {
			base = el
		}
	}

	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		c, err := copystructure.Copy(base)
		if err != nil {
			return errors.Wrapf(err, "copy %s element", detail)
		}
		el := c.(map[string]any)
		set(i, el)
		out = append(out, el)
	}
	sec[detail] = out
	return nil
}

func (f filler) holding(el map[string]any, value float64, own model.Ownership) {
	el["value"] = value
	el["quotePart"] = value
	el["pctDetention"] = own.Self
	el["pctDetentionConjoint"] = own.Partner
	el["dateValue"] = f.dateValue
}
