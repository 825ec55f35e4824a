package rapport

import (
	"context"
	"time"

	caissedomain "fonds-social-go/internal/domain/caisse"
	rapportdomain "fonds-social-go/internal/domain/rapport"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCotisations(ctx context.Context) ([]rapportdomain.LigneCotisation, error) {
	var rows []struct {
		Nom          string    `gorm:"column:nom"`
		Mois         string    `gorm:"column:mois"`
		Montant      float64   `gorm:"column:montant"`
		DatePaiement time.Time `gorm:"column:date_paiement"`
	}
	if err := r.db.WithContext(ctx).
		Table("cotisations").
		Select("membres.nom, cotisations.mois, cotisations.montant, cotisations.date_paiement").
		Joins("join membres on membres.id = cotisations.membre_id").
		Order("cotisations.mois asc, membres.nom asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lignes := make([]rapportdomain.LigneCotisation, 0, len(rows))
	for _, row := range rows {
		lignes = append(lignes, rapportdomain.LigneCotisation{
			Membre:       row.Nom,
			Mois:         row.Mois,
			Montant:      row.Montant,
			DatePaiement: row.DatePaiement,
		})
	}
	return lignes, nil
}

func (r *PostgresRepository) ListPaiements(ctx context.Context) ([]rapportdomain.LignePaiement, error) {
	var rows []struct {
		Nom            string    `gorm:"column:nom"`
		MissionMois    time.Time `gorm:"column:mission_mois"`
		MissionMontant float64   `gorm:"column:mission_montant"`
		Montant        float64   `gorm:"column:montant"`
		DatePaiement   time.Time `gorm:"column:date_paiement"`
		RestePayer     float64   `gorm:"column:reste_payer"`
	}
	if err := r.db.WithContext(ctx).
		Table("paiement_missions").
		Select("membres.nom, missions.mois AS mission_mois, missions.montant AS mission_montant, paiement_missions.montant, paiement_missions.date_paiement, paiement_missions.reste_payer").
		Joins("join missions on missions.id = paiement_missions.mission_id").
		Joins("join membres on membres.id = paiement_missions.membre_id").
		Order("paiement_missions.date_paiement asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lignes := make([]rapportdomain.LignePaiement, 0, len(rows))
	for _, row := range rows {
		lignes = append(lignes, rapportdomain.LignePaiement{
			Membre:         row.Nom,
			MissionMois:    row.MissionMois,
			MissionMontant: row.MissionMontant,
			Montant:        row.Montant,
			DatePaiement:   row.DatePaiement,
			RestePayer:     row.RestePayer,
		})
	}
	return lignes, nil
}

func (r *PostgresRepository) ListCaisses(ctx context.Context) ([]rapportdomain.CaisseLedger, error) {
	var caisses []caissedomain.CaisseSociale
	if err := r.db.WithContext(ctx).Order("id asc").Find(&caisses).Error; err != nil {
		return nil, err
	}

	ledgers := make([]rapportdomain.CaisseLedger, 0, len(caisses))
	for _, caisse := range caisses {
		var entrees []caissedomain.SoldeEntree
		if err := r.db.WithContext(ctx).
			Where("caisse_id = ?", caisse.ID).
			Order("date asc").
			Find(&entrees).Error; err != nil {
			return nil, err
		}

		var sorties []caissedomain.SoldeSortie
		if err := r.db.WithContext(ctx).
			Where("caisse_id = ?", caisse.ID).
			Order("date asc").
			Find(&sorties).Error; err != nil {
			return nil, err
		}

		ledgers = append(ledgers, rapportdomain.CaisseLedger{
			Caisse:  caisse,
			Entrees: entrees,
			Sorties: sorties,
		})
	}
	return ledgers, nil
}
