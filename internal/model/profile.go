package model

import "time"

// Union types of the client form.
const (
	UnionSingle   = "Célibataire"
	UnionDivorced = "Divorcé(e)/FinDePacs"
	UnionWidowed  = "Veuf(ve)"
	UnionFree     = "Union Libre"
	UnionCivil    = "Pacsé(e)"
	UnionMarried  = "Marié(e)"
)

// Marital property regimes.
const (
	RegimeNotApplicable  = "non applicable"
	RegimeCommunityGains = "communauté réduite aux acquêts"
	RegimeUniversal      = "communauté universelle"
	RegimeSeparate       = "séparation de biens"
	RegimeParticipation  = "participation réduite aux acquêts"
)

const (
	CivilityMr  = "M"
	CivilityMrs = "Mme"
)

// DispositifNone marks a property without a tax-incentive regime.
const DispositifNone = "aucun"

// UnionTypes lists every accepted union type.
var UnionTypes = []string{UnionSingle, UnionDivorced, UnionWidowed, UnionFree, UnionCivil, UnionMarried}

// Regimes lists every accepted marital regime.
var Regimes = []string{RegimeNotApplicable, RegimeCommunityGains, RegimeUniversal, RegimeSeparate, RegimeParticipation}

// LivesAlone reports whether a union type describes a single-person household.
func LivesAlone(unionType string) bool {
	switch unionType {
	case UnionSingle, UnionDivorced, UnionWidowed:
		return true
	}
	return false
}

// Profile is the household patrimony assembled for one simulation run.
type Profile struct {
	IsSingle     bool                `json:"isSingle"`
	Personal     Personal            `json:"personal"`
	Cashflow     Cashflow            `json:"cashflow"`
	Financial    []FinancialAsset    `json:"financial"`
	RealEstate   []RealEstateAsset   `json:"realEstate"`
	Professional []ProfessionalAsset `json:"professional"`
	Loans        []Loan              `json:"loans"`
}

type Personal struct {
	Civility      string `json:"civility"`
	Age           int    `json:"age"`
	Children      int    `json:"children"`
	UnionType     string `json:"unionType"`
	MaritalRegime string `json:"maritalRegime"`
}

type Cashflow struct {
	ActivityIncome        float64 `json:"activityIncome"`
	PensionIncome         float64 `json:"pensionIncome"`
	Expenses              float64 `json:"expenses"`
	PartnerActivityIncome float64 `json:"partnerActivityIncome"`
	PartnerPensionIncome  float64 `json:"partnerPensionIncome"`
	FiscalParts           float64 `json:"fiscalParts"`
}

// Ownership splits an asset or a liability between the client and the partner.
type Ownership struct {
	Self    float64 `json:"self"`
	Partner float64 `json:"partner"`
}

// OwnershipFor returns the default split for the household composition.
func OwnershipFor(isSingle bool) Ownership {
	if isSingle {
		return Ownership{Self: 1, Partner: 0}
	}
	return Ownership{Self: 0.5, Partner: 0.5}
}

type FinancialAsset struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Ownership Ownership `json:"ownership"`
}

type RealEstateAsset struct {
	Type       string    `json:"type"`
	Dispositif string    `json:"dispositif"`
	Value      float64   `json:"value"`
	Ownership  Ownership `json:"ownership"`
}

type ProfessionalAsset struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Ownership Ownership `json:"ownership"`
}

type Loan struct {
	Type               string    `json:"type"`
	Maturity           time.Time `json:"maturity"`
	RemainingPrincipal float64   `json:"remainingPrincipal"`
	Ownership          Ownership `json:"ownership"`

	// LinkedProperty indexes Profile.RealEstate; nil when the loan finances no property.
	LinkedProperty *int `json:"linkedProperty"`
}

// LinkedIndex returns the wire value of the property link, -1 when unlinked.
func (l Loan) LinkedIndex() int {
	if l.LinkedProperty == nil {
		return -1
	}
	return *l.LinkedProperty
}
