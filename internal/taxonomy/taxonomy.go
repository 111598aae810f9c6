// Package taxonomy maps product and asset codes to the reporting categories
// expected by the scoring APIs. Unknown codes land in the "Autre" bucket.
package taxonomy

const (
	FinPrecautionary = "1-Epargne de précaution"
	FinMediumLong    = "2-Epargne MT/ LT"
	FinRetirement    = "3-Epargne Retraite"
	FinOther         = "4-Autre"
)

const (
	ImmoPrimary     = "1-Résidence principale"
	ImmoSecondary   = "2-Résidence secondaire"
	ImmoBareRental  = "3-Résidence locative nue"
	ImmoFurnished   = "4-Résidence locative meublée"
	ImmoDismembered = "5-Achat nue-propriété/ viager"
	ImmoSCPI        = "6-SCPI/SCI"
	ImmoLand        = "7-Terrain"
	ImmoForest      = "8-Forêt"
	ImmoOther       = "9-Autre"
)

const (
	LoanMortgage     = "1-Emprunt immobilier"
	LoanAuto         = "2-Emprunt auto"
	LoanConsumer     = "3-Emprunt conso"
	LoanProfessional = "4-Emprunt pro"
	LoanOther        = "5-Autre"
)

const (
	ProCompany  = "1-Société"
	ProSCI      = "2-SCI"
	ProGoodwill = "3-Fond de commerce"
	ProOther    = "4-Autre"
)

var financial = map[string]string{
	"LivretA":     FinPrecautionary,
	"LivretBleu":  FinPrecautionary,
	"LDDS":        FinPrecautionary,
	"LivretJeune": FinPrecautionary,
	"LEP":         FinPrecautionary,
	"LEE":         FinPrecautionary,
	"PEL":         FinPrecautionary,
	"CEL":         FinPrecautionary,
	"CAT":         FinPrecautionary,
	"Compte":      FinPrecautionary,
	"PEA":         FinMediumLong,
	"PEAPME":      FinMediumLong,
	"PEA-Ass":     FinMediumLong,
	"AV":          FinMediumLong,
	"Capi":        FinMediumLong,
	"CTO":         FinMediumLong,
	"CTOFonds":    FinMediumLong,
	"CTODette":    FinMediumLong,
	"CTODefisc":   FinMediumLong,
	"Crypto":      FinMediumLong,
	"PEE":         FinMediumLong,
	"PEI":         FinMediumLong,
	"PER":         FinRetirement,
	"PERP":        FinRetirement,
	"PREFON":      FinRetirement,
	"MADELIN":     FinRetirement,
	"PERO":        FinRetirement,
	"ART83":       FinRetirement,
	"PERECO":      FinRetirement,
	"PERCO":       FinRetirement,
}

var realEstate = map[string]string{
	"RP":                        ImmoPrimary,
	"RS":                        ImmoSecondary,
	"RL-Nue":                    ImmoBareRental,
	"RL-Meuble":                 ImmoFurnished,
	"Achat-NuePropriete":        ImmoDismembered,
	"Achat-Viager":              ImmoDismembered,
	"Achat-JouissanceDiffere":   ImmoDismembered,
	"SCPI-SCI":                  ImmoSCPI,
	"Terrain":                   ImmoLand,
	"Terrain constructible":     ImmoLand,
	"Terrain non constructible": ImmoLand,
	"Foret":                     ImmoForest,
	"GFI/GFF":                   ImmoForest,
}

var loans = map[string]string{
	"Immo":                LoanMortgage,
	"Immo TxFixe":         LoanMortgage,
	"Immo TxFixe Différé": LoanMortgage,
	"Immo TxFixe InFine":  LoanMortgage,
	"Immo TxVar":          LoanMortgage,
	"Immo PVH":            LoanMortgage,
	"Auto":                LoanAuto,
	"Conso":               LoanConsumer,
	"Avance":              LoanConsumer,
	"Perso Autre":         LoanConsumer,
	"Pro TxFixe":          LoanProfessional,
	"Pro TxFixe Différé":  LoanProfessional,
	"Pro TxFixe InFine":   LoanProfessional,
	"Pro TxVar":           LoanProfessional,
	"Lease":               LoanProfessional,
	"CCA":                 LoanProfessional,
}

var professional = map[string]string{
	"Société":        ProCompany,
	"SCI":            ProSCI,
	"SCI-Famille":    ProSCI,
	"SCI-Pro":        ProSCI,
	"Fond Commerce":  ProGoodwill,
	"Fonds Commerce": ProGoodwill,
}

// Financial classifies a financial product code.
func Financial(code string) string { return lookup(financial, code, FinOther) }

// RealEstate classifies a property type code.
func RealEstate(code string) string { return lookup(realEstate, code, ImmoOther) }

// Loan classifies a loan type code.
func Loan(code string) string { return lookup(loans, code, LoanOther) }

// Professional classifies a business asset code.
func Professional(code string) string { return lookup(professional, code, ProOther) }

func lookup(m map[string]string, code, fallback string) string {
	if cat, ok := m[code]; ok {
		return cat
	}
	return fallback
}
