package caisse

import "time"

type CaisseSociale struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SoldeActuel float64   `gorm:"type:numeric(12,2);not null;default:0" json:"solde_actuel"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CaisseSociale) TableName() string {
	return "caisse_sociales"
}

type SoldeEntree struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Motif     string    `gorm:"not null" json:"motif"`
	Montant   float64   `gorm:"type:numeric(12,2);not null" json:"montant"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	CaisseID  uint      `gorm:"not null;index" json:"caisse_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SoldeEntree) TableName() string {
	return "solde_entrees"
}

type SoldeSortie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Motif     string    `gorm:"not null" json:"motif"`
	Montant   float64   `gorm:"type:numeric(12,2);not null" json:"montant"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	CaisseID  uint      `gorm:"not null;index" json:"caisse_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SoldeSortie) TableName() string {
	return "solde_sorties"
}

// CaisseWithTotals annotates a caisse with its ledger totals after the
// balance has been recomputed.
type CaisseWithTotals struct {
	CaisseSociale
	TotalEntrees float64 `json:"total_entrees"`
	TotalSorties float64 `json:"total_sorties"`
}

// TrendPoint is one month of ledger activity, keyed YYYY-MM.
type TrendPoint struct {
	Mois    string  `json:"mois"`
	Entrees float64 `json:"entrees"`
	Sorties float64 `json:"sorties"`
}

type EntreeInput struct {
	Motif    string
	Montant  float64
	Date     time.Time
	CaisseID uint
}

type UpdateEntreeInput struct {
	ID       uint
	Motif    string
	Montant  float64
	Date     time.Time
	CaisseID uint
}

type SortieInput struct {
	Motif    string
	Montant  float64
	Date     time.Time
	CaisseID uint
}

type UpdateSortieInput struct {
	ID       uint
	Motif    string
	Montant  float64
	Date     time.Time
	CaisseID uint
}
