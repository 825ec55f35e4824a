package missions

import (
	"time"

	"fonds-social-go/internal/domain/membres"
)

type Mission struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	MembreID  uint            `gorm:"not null;index;uniqueIndex:idx_mission_membre_mois,priority:1" json:"membre_id"`
	Montant   float64         `gorm:"type:numeric(12,2);not null" json:"montant"`
	Mois      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_mission_membre_mois,priority:2" json:"mois"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Membre    *membres.Membre `gorm:"foreignKey:MembreID" json:"membre,omitempty"`
}

func (Mission) TableName() string {
	return "missions"
}

type PaiementMission struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	MissionID    uint            `gorm:"not null;index" json:"mission_id"`
	MembreID     uint            `gorm:"not null;index" json:"membre_id"`
	Montant      float64         `gorm:"type:numeric(12,2);not null" json:"montant"`
	DatePaiement time.Time       `gorm:"not null" json:"date_paiement"`
	RestePayer   float64         `gorm:"type:numeric(12,2);not null" json:"reste_payer"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Mission      *Mission        `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	Membre       *membres.Membre `gorm:"foreignKey:MembreID" json:"membre,omitempty"`
}

func (PaiementMission) TableName() string {
	return "paiement_missions"
}

type CreateMissionInput struct {
	MembreID uint
	Montant  float64
	Mois     time.Time
}

type UpdateMissionInput struct {
	ID       uint
	MembreID uint
	Montant  float64
	Mois     time.Time
}

type PaiementInput struct {
	MissionID uint
	MembreID  uint
	Montant   float64
}

type UpdatePaiementInput struct {
	ID           uint
	Montant      float64
	DatePaiement time.Time
}

// PaiementResult carries the stored payment and the user-facing message
// distinguishing a full settlement from a partial one.
type PaiementResult struct {
	Paiement PaiementMission
	Message  string
}

var nomsDesMois = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// NomDuMois returns the French month name used in API responses.
func NomDuMois(t time.Time) string {
	return nomsDesMois[t.Month()-1]
}

// NormalizeMois truncates a date to the first of its month.
func NormalizeMois(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
