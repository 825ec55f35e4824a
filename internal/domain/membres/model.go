package membres

import "time"

type Membre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"not null" json:"nom"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Poste     string    `json:"poste"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Membre) TableName() string {
	return "membres"
}

type CreateMembreInput struct {
	Nom   string
	Email string
	Poste string
}

type UpdateMembreInput struct {
	ID    uint
	Nom   string
	Email string
	Poste string
}
