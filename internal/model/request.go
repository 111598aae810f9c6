package model

import "github.com/shopspring/decimal"

// Mode selects how the household records are produced.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
)

// SimulationRequest is the input of one simulation run.
// Manual runs read Situation and Amounts; auto runs draw everything and only
// read Counts, which pins the number and subtypes of records per category.
type SimulationRequest struct {
	TenantID  string    `json:"tenant_id,omitempty" yaml:"tenant_id"`
	Mode      Mode      `json:"mode" yaml:"mode" validate:"required,oneof=manual auto"`
	Seed      *int64    `json:"seed,omitempty" yaml:"seed"`
	Situation Situation `json:"situation" yaml:"situation"`
	Amounts   Amounts   `json:"amounts" yaml:"amounts"`
	Counts    Counts    `json:"counts" yaml:"counts"`
}

type Situation struct {
	// IsSingle overrides the household composition implied by the union type.
	IsSingle *bool         `json:"isCelib,omitempty" yaml:"isCelib"`
	Personal PersonalInput `json:"perso" yaml:"perso"`
	Cashflow CashflowInput `json:"cashflow" yaml:"cashflow"`
}

type PersonalInput struct {
	Civility      string `json:"Civilite" yaml:"Civilite" validate:"omitempty,oneof=M Mme"`
	Age           *int   `json:"Age,omitempty" yaml:"Age" validate:"omitempty,gte=18,lte=120"`
	Children      int    `json:"nbEnfants" yaml:"nbEnfants" validate:"gte=0,lte=20"`
	UnionType     string `json:"typeUnion" yaml:"typeUnion"`
	MaritalRegime string `json:"regimeMatrimonial" yaml:"regimeMatrimonial"`
}

type CashflowInput struct {
	ActivityIncome        decimal.Decimal  `json:"revenusActivite" yaml:"revenusActivite"`
	PensionIncome         decimal.Decimal  `json:"pensionRetraite" yaml:"pensionRetraite"`
	Expenses              decimal.Decimal  `json:"depensesCourantes" yaml:"depensesCourantes"`
	PartnerActivityIncome decimal.Decimal  `json:"revenusActiviteConjoint" yaml:"revenusActiviteConjoint"`
	PartnerPensionIncome  decimal.Decimal  `json:"pensionRetraiteConjoint" yaml:"pensionRetraiteConjoint"`
	FiscalParts           *decimal.Decimal `json:"nbPartFiscal,omitempty" yaml:"nbPartFiscal"`
}

// AmountTree lists amounts per category and subtype, e.g. LivretA -> LivretA -> [18000].
type AmountTree map[string]map[string][]decimal.Decimal

// CountTree lists record counts per category and subtype.
type CountTree map[string]map[string]int

type Amounts struct {
	Financial    AmountTree `json:"fin,omitempty" yaml:"fin"`
	RealEstate   AmountTree `json:"immo,omitempty" yaml:"immo"`
	Professional AmountTree `json:"pro,omitempty" yaml:"pro"`
	Loans        AmountTree `json:"emprunt,omitempty" yaml:"emprunt"`
}

type Counts struct {
	Financial    CountTree `json:"fin,omitempty" yaml:"fin"`
	RealEstate   CountTree `json:"immo,omitempty" yaml:"immo"`
	Professional CountTree `json:"pro,omitempty" yaml:"pro"`
	Loans        CountTree `json:"emprunt,omitempty" yaml:"emprunt"`
}
