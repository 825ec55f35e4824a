package rapport

import (
	"time"

	caissedomain "fonds-social-go/internal/domain/caisse"
)

// NomFichier is the attachment name of the generated workbook.
const NomFichier = "Rapport_Social.xlsx"

type LigneCotisation struct {
	Membre       string
	Mois         string
	Montant      float64
	DatePaiement time.Time
}

type LignePaiement struct {
	Membre         string
	MissionMois    time.Time
	MissionMontant float64
	Montant        float64
	DatePaiement   time.Time
	RestePayer     float64
}

// CaisseLedger bundles one caisse with its full inflow/outflow history.
type CaisseLedger struct {
	Caisse  caissedomain.CaisseSociale
	Entrees []caissedomain.SoldeEntree
	Sorties []caissedomain.SoldeSortie
}
