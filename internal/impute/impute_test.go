package impute

import (
	"testing"
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrimony-engine/internal/model"
)

var valuation = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

func sampleProfile() *model.Profile {
	linked := 0
	couple := model.OwnershipFor(false)
	return &model.Profile{
		Personal: model.Personal{
			Civility:      model.CivilityMrs,
			Age:           40,
			Children:      2,
			UnionType:     model.UnionMarried,
			MaritalRegime: model.RegimeCommunityGains,
		},
		Cashflow: model.Cashflow{ActivityIncome: 90000, PartnerActivityIncome: 30000, Expenses: 4000, FiscalParts: 3},
		Financial: []model.FinancialAsset{
			{Type: "LivretA", Value: 18000, Ownership: couple},
			{Type: "PEA", Value: 25000, Ownership: couple},
		},
		RealEstate: []model.RealEstateAsset{
			{Type: "RP", Dispositif: model.DispositifNone, Value: 350000, Ownership: couple},
		},
		Loans: []model.Loan{
			{Type: "Immo TxFixe", Maturity: time.Date(2041, 6, 30, 0, 0, 0, 0, time.UTC), RemainingPrincipal: 200000, Ownership: couple, LinkedProperty: &linked},
			{Type: "Auto", Maturity: time.Date(2029, 6, 30, 0, 0, 0, 0, time.UTC), RemainingPrincipal: 9000, Ownership: couple},
		},
	}
}

func details(t *testing.T, doc map[string]any, section, detail string) []any {
	t.Helper()
	sec, ok := doc[section].(map[string]any)
	require.True(t, ok, "section %s", section)
	list, ok := sec[detail].([]any)
	require.True(t, ok, "detail %s", detail)
	return list
}

func TestImputeFillsSections(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	doc, err := Impute(tmpl, sampleProfile(), valuation)
	require.NoError(t, err)

	client := details(t, doc, SectionClient, DetailClient)
	require.Len(t, client, 1)
	c := client[0].(map[string]any)
	assert.Equal(t, "Mme", c["civilite"])
	assert.Equal(t, "1986-01-01", c["dateNaissance"])
	assert.Equal(t, model.RegimeCommunityGains, c["regimeMatrimonial"])
	assert.Equal(t, "France", c["residenceFiscale"])

	cash := details(t, doc, SectionCashflow, DetailCashflow)[0].(map[string]any)
	assert.Equal(t, 90000.0, cash["revenusActivite"])
	assert.Equal(t, 3.0, cash["nbPartFiscal"])
	assert.Equal(t, 0.0, cash["revenusFonciers"])

	fin := details(t, doc, SectionFin, DetailFin)
	require.Len(t, fin, 2)
	livret := fin[0].(map[string]any)
	assert.Equal(t, "LivretA", livret["typeProd"])
	assert.Equal(t, "1-Epargne de précaution", livret["catProd"])
	assert.Equal(t, 18000.0, livret["value"])
	assert.Equal(t, 18000.0, livret["quotePart"])
	assert.Equal(t, 0.5, livret["pctDetention"])
	assert.Equal(t, "2026-06-30", livret["dateValue"])
	assert.Equal(t, "", livret["libelle"])

	immo := details(t, doc, SectionImmo, DetailImmo)
	require.Len(t, immo, 1)
	assert.Equal(t, "1-Résidence principale", immo[0].(map[string]any)["catImmo"])

	assert.Empty(t, details(t, doc, SectionPro, DetailPro))

	loans := details(t, doc, SectionEmprunt, DetailEmprunt)
	require.Len(t, loans, 2)
	mortgage := loans[0].(map[string]any)
	assert.Equal(t, "2041-06-30", mortgage["dtFin"])
	assert.Equal(t, 0, mortgage["ImmoLie"])
	assert.Equal(t, 200000.0, mortgage["quotePart"])
	assert.Equal(t, -1, loans[1].(map[string]any)["ImmoLie"])
}

func TestImputeEmptyDomainIsEmptyList(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	doc, err := Impute(tmpl, &model.Profile{Personal: model.Personal{Age: 30, UnionType: model.UnionSingle}}, valuation)
	require.NoError(t, err)

	immo := details(t, doc, SectionImmo, DetailImmo)
	assert.NotNil(t, immo)
	assert.Len(t, immo, 0)
}

func TestImputeDoesNotMutateInputs(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)
	before, err := copystructure.Copy(tmpl)
	require.NoError(t, err)

	p := sampleProfile()
	_, err = Impute(tmpl, p, valuation)
	require.NoError(t, err)

	assert.Equal(t, before, tmpl)
	assert.Equal(t, sampleProfile(), p)
}

func TestImputeIsIdempotent(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)
	p := sampleProfile()

	once, err := Impute(tmpl, p, valuation)
	require.NoError(t, err)
	twice, err := Impute(once, p, valuation)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestImputeMissingSections(t *testing.T) {
	doc, err := Impute(map[string]any{"meta": "kept"}, sampleProfile(), valuation)
	require.NoError(t, err)

	assert.Equal(t, "kept", doc["meta"])
	fin := details(t, doc, SectionFin, DetailFin)
	require.Len(t, fin, 2)
	assert.Equal(t, map[string]any{
		"typeProd":             "PEA",
		"catProd":              "2-Epargne MT/ LT",
		"value":                25000.0,
		"quotePart":            25000.0,
		"pctDetention":         0.5,
		"pctDetentionConjoint": 0.5,
		"dateValue":            "2026-06-30",
	}, fin[1])
}

func TestParseTemplateRejectsNonObject(t *testing.T) {
	_, err := ParseTemplate([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = ParseTemplate([]byte(`null`))
	assert.Error(t, err)
}
