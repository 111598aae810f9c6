package calibration

import (
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/sampling"
)

func between(lo, hi float64) sampling.Range { return sampling.Range{Min: lo, Max: hi} }

var financial = []Category{
	{
		Name:    "LivretA",
		Count:   sampling.MustTable(bp[int]{Upper: 0.15, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.9, Outcome: "LivretA"}, bp[string]{Upper: 1.0, Outcome: "LivretBleu"}),
		Amount:  between(1000, 22950),
		Aliases: map[string]string{"LvretBleu": "LivretBleu"},
	},
	{
		Name:    "LDDS",
		Count:   sampling.MustTable(bp[int]{Upper: 0.53, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("LDDS"),
		Amount:  between(1000, 12000),
	},
	{
		Name:  "Cash",
		Count: sampling.MustTable(bp[int]{Upper: 0.44, Outcome: 0}, bp[int]{Upper: 0.84, Outcome: 1}, bp[int]{Upper: 0.97, Outcome: 2}, bp[int]{Upper: 1.0, Outcome: 3}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.29, Outcome: "LivretJeune"},
			bp[string]{Upper: 0.36, Outcome: "LEP"},
			bp[string]{Upper: 0.57, Outcome: "PEL"},
			bp[string]{Upper: 0.71, Outcome: "CEL"},
			bp[string]{Upper: 0.86, Outcome: "CAT"},
			bp[string]{Upper: 1.0, Outcome: "Compte"},
		),
		Amount: between(1000, 20000),
	},
	{
		Name:  "CTO",
		Count: sampling.MustTable(bp[int]{Upper: 0.90, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.5, Outcome: "CTO"},
			bp[string]{Upper: 0.8, Outcome: "CTOFonds"},
			bp[string]{Upper: 0.95, Outcome: "CTODefisc"},
			bp[string]{Upper: 1.0, Outcome: "CTODette"},
		),
		Amount: between(5000, 20000),
	},
	{
		Name:    "PEA",
		Count:   sampling.MustTable(bp[int]{Upper: 0.85, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 2}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.9, Outcome: "PEA"}, bp[string]{Upper: 0.92, Outcome: "PEA-Ass"}, bp[string]{Upper: 1.0, Outcome: "PEAPME"}),
		Amount:  between(5000, 40000),
	},
	{
		Name:    "Assurance",
		Count:   sampling.MustTable(bp[int]{Upper: 0.59, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.9, Outcome: "AV"}, bp[string]{Upper: 1.0, Outcome: "Capi"}),
		Amount:  between(10000, 30000),
	},
	{
		Name:  "Retraite",
		Count: sampling.MustTable(bp[int]{Upper: 0.83, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.6, Outcome: "PER"},
			bp[string]{Upper: 0.7, Outcome: "PERP"},
			bp[string]{Upper: 0.8, Outcome: "MADELIN"},
			bp[string]{Upper: 0.9, Outcome: "PERO"},
			bp[string]{Upper: 1.0, Outcome: "ART83"},
		),
		Amount: between(1000, 10000),
	},
	{
		Name:    "EpargneSalariale",
		Count:   sampling.MustTable(bp[int]{Upper: 0.85, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.4, Outcome: "PEE"}, bp[string]{Upper: 0.7, Outcome: "PERECO"}, bp[string]{Upper: 1.0, Outcome: "PERCO"}),
		Amount:  between(5000, 8000),
	},
	{
		Name:    "Crypto",
		Count:   sampling.MustTable(bp[int]{Upper: 0.85, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("Crypto"),
		Amount:  between(1000, 10000),
	},
	{
		Name:    "Voiture",
		Count:   sampling.MustTable(bp[int]{Upper: 0.14, Outcome: 0}, bp[int]{Upper: 0.84, Outcome: 1}, bp[int]{Upper: 1.0, Outcome: 2}),
		Subtype: sampling.Single("Voiture"),
		Amount:  between(5000, 30000),
	},
	{
		Name:  "Autres",
		Count: sampling.MustTable(bp[int]{Upper: 0.99, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.1, Outcome: "NFT"},
			bp[string]{Upper: 0.15, Outcome: "BiensToken"},
			bp[string]{Upper: 0.3, Outcome: "Art"},
			bp[string]{Upper: 0.6, Outcome: "Vins"},
			bp[string]{Upper: 0.9, Outcome: "Meubles"},
			bp[string]{Upper: 1.0, Outcome: "Autre"},
		),
		Amount: between(1000, 10000),
	},
}

// Rental subtypes drawn in auto mode; their dispositif is drawn separately.
const (
	RentalBare      = "RL-Nue"
	RentalFurnished = "RL-Meuble"
)

var realEstate = []Category{
	{
		Name:    "RP",
		Count:   sampling.MustTable(bp[int]{Upper: 0.42, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("RP"),
		Amount:  between(100000, 500000),
	},
	{
		Name:    "RS",
		Count:   sampling.MustTable(bp[int]{Upper: 0.90, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("RS"),
		Amount:  between(50000, 300000),
	},
	{
		Name:  "RL",
		Count: sampling.MustTable(bp[int]{Upper: 0.81, Outcome: 0}, bp[int]{Upper: 0.95, Outcome: 1}, bp[int]{Upper: 1.0, Outcome: 2}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.70, Outcome: RentalBare},
			bp[string]{Upper: 0.90, Outcome: RentalFurnished},
			bp[string]{Upper: 0.95, Outcome: "Achat-NuePropriete"},
			bp[string]{Upper: 0.98, Outcome: "Achat-Viager"},
			bp[string]{Upper: 1.00, Outcome: "Achat-JouissanceDiffere"},
		),
		Amount: between(80000, 300000),
		Manual: []string{
			"RL-Nue", "RL-Nue Pinel", "RL-Nue Pinel+", "RL-Nue ScellierIntBBC", "RL-Nue ScellierIntNonBBC",
			"RL-Nue Denormandie", "RL-Nue LocAvantage", "RL-Nue Malraux", "RL-Nue MonumentHistorique",
			"RL-Meuble Meublé LT", "RL-Meuble Meublé CensiBouvard", "RL-Meuble Meublé TourismeClasse",
			"RL-Meuble Meublé TourismeNonClasse",
		},
	},
	{
		Name:    "SCPI",
		Count:   sampling.MustTable(bp[int]{Upper: 0.95, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("SCPI-SCI"),
		Amount:  between(1000, 50000),
	},
	{
		Name:    "Foret",
		Count:   sampling.MustTable(bp[int]{Upper: 0.95, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.95, Outcome: "Foret"}, bp[string]{Upper: 1.0, Outcome: "GFI/GFF"}),
		Amount:  between(5000, 30000),
	},
	{
		Name:    "Terrain",
		Count:   sampling.MustTable(bp[int]{Upper: 0.99, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.5, Outcome: "Terrain constructible"}, bp[string]{Upper: 1.0, Outcome: "Terrain non constructible"}),
		Amount:  between(5000, 100000),
	},
}

var dispositifs = map[string]sampling.Table[string]{
	RentalBare: sampling.MustTable(
		bp[string]{Upper: 0.40, Outcome: model.DispositifNone},
		bp[string]{Upper: 0.65, Outcome: "Pinel"},
		bp[string]{Upper: 0.67, Outcome: "Pinel+"},
		bp[string]{Upper: 0.74, Outcome: "ScellierIntBBC"},
		bp[string]{Upper: 0.81, Outcome: "ScellierIntNonBBC"},
		bp[string]{Upper: 0.87, Outcome: "Denormandie"},
		bp[string]{Upper: 0.94, Outcome: "LocAvantage"},
		bp[string]{Upper: 0.97, Outcome: "Malraux"},
		bp[string]{Upper: 1.00, Outcome: "MonumentHistorique"},
	),
	RentalFurnished: sampling.MustTable(
		bp[string]{Upper: 0.14, Outcome: model.DispositifNone},
		bp[string]{Upper: 0.40, Outcome: "CensiBouvard"},
		bp[string]{Upper: 0.70, Outcome: "TourismeClasse"},
		bp[string]{Upper: 1.00, Outcome: "TourismeNonClasse"},
	),
}

// Dispositifs returns the tax-regime table of a rental subtype.
func Dispositifs(subtype string) (sampling.Table[string], bool) {
	t, ok := dispositifs[subtype]
	return t, ok
}

// ManualRental splits a form rental code such as "RL-Nue Pinel" into the
// property type and its dispositif. Codes without a rental prefix keep their
// own type and no dispositif.
func ManualRental(code string) (propertyType, dispositif string) {
	for _, prefix := range []string{RentalBare, RentalFurnished} {
		if code == prefix {
			return prefix, model.DispositifNone
		}
		if len(code) > len(prefix)+1 && code[:len(prefix)+1] == prefix+" " {
			return prefix, code[len(prefix)+1:]
		}
	}
	return code, model.DispositifNone
}

var professional = []Category{
	{
		Name:    "Ste",
		Count:   sampling.MustTable(bp[int]{Upper: 0.95, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("Société"),
		Amount:  between(2000, 300000),
	},
	{
		Name:    "Sci",
		Count:   sampling.MustTable(bp[int]{Upper: 0.98, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.7, Outcome: "SCI-Famille"}, bp[string]{Upper: 1.0, Outcome: "SCI-Pro"}),
		Amount:  between(50000, 500000),
	},
	{
		Name:  "Autres",
		Count: sampling.MustTable(bp[int]{Upper: 0.95, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.50, Outcome: "Fonds Commerce"},
			bp[string]{Upper: 0.80, Outcome: "Bien Exploitation"},
			bp[string]{Upper: 0.95, Outcome: "CCA"},
			bp[string]{Upper: 1.0, Outcome: "Brevet"},
		),
		Amount:  between(50000, 500000),
		Aliases: map[string]string{"Fond Commerce": "Fonds Commerce"},
	},
}

// PerpetualLoans never amortize; their maturity is pushed out of any horizon.
var PerpetualLoans = map[string]bool{"Immo PVH": true}

// PerpetualYears is the maturity given to perpetual loans.
const PerpetualYears = 90

var loans = []Category{
	{
		Name:  "PretImmo",
		Count: sampling.MustTable(bp[int]{Upper: 0.18, Outcome: 0}, bp[int]{Upper: 0.86, Outcome: 1}, bp[int]{Upper: 0.96, Outcome: 2}, bp[int]{Upper: 1.0, Outcome: 3}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.81, Outcome: "Immo TxFixe"},
			bp[string]{Upper: 0.92, Outcome: "Immo TxFixe Différé"},
			bp[string]{Upper: 0.95, Outcome: "Immo TxFixe InFine"},
			bp[string]{Upper: 0.99, Outcome: "Immo TxVar"},
			bp[string]{Upper: 1.0, Outcome: "Immo PVH"},
		),
		Amount:         between(50000, 500000),
		Horizon:        Horizon{MinYears: 2, MaxYears: 25, ManualYears: 20},
		PropertyLinked: true,
	},
	{
		Name:    "PretConso",
		Count:   sampling.MustTable(bp[int]{Upper: 0.8, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(bp[string]{Upper: 0.95, Outcome: "Conso"}, bp[string]{Upper: 1.0, Outcome: "Avance"}),
		Amount:  between(5000, 20000),
		Manual:  []string{"Perso Autre"},
		Horizon: Horizon{MinYears: 1, MaxYears: 5, ManualYears: 5},
	},
	{
		Name:    "PretAuto",
		Count:   sampling.MustTable(bp[int]{Upper: 0.8, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.Single("Auto"),
		Amount:  between(5000, 20000),
		Horizon: Horizon{MinYears: 1, MaxYears: 5, ManualYears: 5},
	},
	{
		Name:  "PretPro",
		Count: sampling.MustTable(bp[int]{Upper: 0.88, Outcome: 0}, bp[int]{Upper: 1.0, Outcome: 1}),
		Subtype: sampling.MustTable(
			bp[string]{Upper: 0.5, Outcome: "Pro TxFixe"},
			bp[string]{Upper: 0.7, Outcome: "Pro TxFixe Différé"},
			bp[string]{Upper: 0.8, Outcome: "Pro TxFixe InFine"},
			bp[string]{Upper: 0.90, Outcome: "Pro TxVar"},
			bp[string]{Upper: 0.95, Outcome: "Lease"},
			bp[string]{Upper: 1.0, Outcome: "CCA"},
		),
		Amount: between(10000, 300000),
		Aliases: map[string]string{
			"ProTxFixe":        "Pro TxFixe",
			"ProTxFixeDifféré": "Pro TxFixe Différé",
			"ProTxFixeInFine":  "Pro TxFixe InFine",
			"ProTxVar":         "Pro TxVar",
		},
		Horizon: Horizon{MinYears: 1, MaxYears: 10, ManualYears: 7},
	},
}
