package algoclient

import (
	"github.com/pkg/errors"
)

// Objectives lists the sub-objectives offered for each client objective.
var Objectives = map[string][]string{
	"Investir": {
		"Investir régulièrement",
		"Investir dans ma résidence principale",
		"Investir dans de l'immobilier locatif",
		"Optimiser la rentabilité et les risques de mes actifs financiers",
	},
	"Financer un achat ou un projet": {
		"Financer un projet ponctuel (hors immobilier et hors voiture)",
		"Financer un bien immobilier",
	},
	"Compléter mes revenus": {
		"Générer des revenus supplémentaires",
		"Optimiser mes revenus de retraite",
	},
	"Payer moins d'impôts": {
		"Investir pour obtenir des réductions d'impots",
		"Limiter la fiscalité sur les revenus",
	},
}

var codes = map[string]string{}

func init() {
	for _, c := range []struct{ label, code string }{
		{"Investir", "investir"},
		{"Investir régulièrement", "regulier"},
		{"Investir dans ma résidence principale", "rp"},
		{"Investir dans de l'immobilier locatif", "rl"},
		{"Optimiser la rentabilité et les risques de mes actifs financiers", "optimiser"},
		{"Financer un achat ou un projet", "projet"},
		{"Financer un projet ponctuel (hors immobilier et hors voiture)", "projet"},
		{"Financer un bien immobilier", "immo"},
		{"Compléter mes revenus", "completer"},
		{"Générer des revenus supplémentaires", "revenus_supplementaires"},
		{"Optimiser mes revenus de retraite", "optimiser"},
		{"Payer moins d'impôts", "impots"},
		{"Investir pour obtenir des réductions d'impots", "reduction_impots"},
		{"Limiter la fiscalité sur les revenus", "fiscalite_revenus"},
	} {
		codes[c.label] = c.code
	}
}

// InvestorProfile is the risk appetite sent with a strategy request.
type InvestorProfile struct {
	Level string `json:"level"`
	ESG   string `json:"esg"`
}

// DefaultInvestorProfile is a balanced, ESG-neutral investor.
var DefaultInvestorProfile = InvestorProfile{Level: "Balanced", ESG: "Neutral"}

// StrategyRequest asks the strategy service for recommendations on a
// projection identified by RequestID and RequestKey.
type StrategyRequest struct {
	RequestID       string          `json:"requestId"`
	RequestKey      string          `json:"requestKey"`
	Objective       string          `json:"objectif"`
	SubObjective    string          `json:"sousObjectif"`
	Params          map[string]any  `json:"paramObjectif"`
	InvestorProfile InvestorProfile `json:"investorProfile"`
}

// NewStrategyRequest maps the objective labels to their API codes.
// subObjective must be one of the sub-objectives of objective.
func NewStrategyRequest(projection *Response, objective, subObjective string, params map[string]any) (StrategyRequest, error) {
	subs, ok := Objectives[objective]
	if !ok {
		return StrategyRequest{}, errors.Errorf("unknown objective %q", objective)
	}
	found := false
	for _, s := range subs {
		if s == subObjective {
			found = true
			break
		}
	}
	if !found {
		return StrategyRequest{}, errors.Errorf("sub-objective %q does not belong to %q", subObjective, objective)
	}
	if projection == nil || projection.RequestID == "" {
		return StrategyRequest{}, errors.New("projection has no requestId")
	}
	if params == nil {
		params = map[string]any{}
	}

	return StrategyRequest{
		RequestID:       projection.RequestID,
		RequestKey:      projection.RequestKey,
		Objective:       codes[objective],
		SubObjective:    codes[subObjective],
		Params:          params,
		InvestorProfile: DefaultInvestorProfile,
	}, nil
}
