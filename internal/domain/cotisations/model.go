package cotisations

import "time"

// PlafondCotisation is the monthly due ceiling; a cotisation at the
// ceiling is considered fully paid.
const PlafondCotisation = 3000.0

const (
	StatusNonPaye     = "NonPaye"
	StatusInsuffisant = "Insuffisant"
	StatusPaye        = "Paye"
)

type Cotisation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MembreID     uint      `gorm:"not null;index;uniqueIndex:idx_membre_mois,priority:1" json:"membre_id"`
	Montant      float64   `gorm:"type:numeric(12,2);not null" json:"montant"`
	Mois         string    `gorm:"size:7;not null;uniqueIndex:idx_membre_mois,priority:2" json:"mois"`
	DatePaiement time.Time `gorm:"type:date;not null" json:"date_paiement"`
	Status       string    `gorm:"size:20;not null" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Cotisation) TableName() string {
	return "cotisations"
}

type CreateCotisationInput struct {
	MembreID     uint
	Montant      float64
	Mois         string
	DatePaiement time.Time
}

type UpdateCotisationInput struct {
	ID           uint
	MembreID     uint
	Montant      float64
	Mois         string
	DatePaiement time.Time
}

// DeriveStatus is the single status rule shared by every call site.
func DeriveStatus(montant float64) string {
	switch {
	case montant <= 0:
		return StatusNonPaye
	case montant < PlafondCotisation:
		return StatusInsuffisant
	default:
		return StatusPaye
	}
}
