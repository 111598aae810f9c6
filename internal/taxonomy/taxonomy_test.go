package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"patrimony-engine/internal/calibration"
)

func TestRealEstate(t *testing.T) {
	assert.Equal(t, "1-Résidence principale", RealEstate("RP"))
	assert.Equal(t, "9-Autre", RealEstate("UnknownCode"))
	assert.Equal(t, "9-Autre", RealEstate(""))
	assert.Equal(t, ImmoDismembered, RealEstate("Achat-Viager"))
	assert.Equal(t, ImmoForest, RealEstate("GFI/GFF"))
}

func TestFinancial(t *testing.T) {
	assert.Equal(t, FinPrecautionary, Financial("LivretA"))
	assert.Equal(t, FinMediumLong, Financial("PEA-Ass"))
	assert.Equal(t, FinRetirement, Financial("PERCO"))
	assert.Equal(t, FinOther, Financial("Voiture"))
}

func TestLoan(t *testing.T) {
	assert.Equal(t, LoanMortgage, Loan("Immo TxFixe Différé"))
	assert.Equal(t, LoanAuto, Loan("Auto"))
	assert.Equal(t, LoanConsumer, Loan("Avance"))
	assert.Equal(t, LoanProfessional, Loan("Lease"))
	assert.Equal(t, LoanOther, Loan("Hypothèque"))
}

func TestProfessional(t *testing.T) {
	assert.Equal(t, ProCompany, Professional("Société"))
	assert.Equal(t, ProSCI, Professional("SCI-Famille"))
	assert.Equal(t, ProGoodwill, Professional("Fond Commerce"))
	assert.Equal(t, ProOther, Professional("Brevet"))
}

// Every code the generators can draw lands in a named bucket, except the
// families that are reported as "Autre" on purpose.
func TestDrawableCodesAreClassified(t *testing.T) {
	otherOnPurpose := map[string]bool{
		"Voiture": true, "NFT": true, "BiensToken": true, "Art": true, "Vins": true,
		"Meubles": true, "Autre": true, "Bien Exploitation": true, "CCA": true, "Brevet": true,
	}

	check := func(d calibration.Domain, classify func(string) string, other string) {
		for _, c := range calibration.Categories(d) {
			for _, code := range c.Subtype.Outcomes() {
				if otherOnPurpose[code] && d != calibration.Loans {
					continue
				}
				assert.NotEqual(t, other, classify(code), "%s/%s", d, code)
			}
		}
	}

	check(calibration.Financial, Financial, FinOther)
	check(calibration.RealEstate, RealEstate, ImmoOther)
	check(calibration.Professional, Professional, ProOther)
	check(calibration.Loans, Loan, LoanOther)
}
