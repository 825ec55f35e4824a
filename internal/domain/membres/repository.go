package membres

import "context"

type Repository interface {
	List(ctx context.Context) ([]Membre, error)
	GetByID(ctx context.Context, id uint) (*Membre, error)
	Create(ctx context.Context, membre *Membre) error
	Update(ctx context.Context, membre *Membre) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByEmail(ctx context.Context, email string, excludeID uint) (int64, error)
	ListSansCotisation(ctx context.Context) ([]Membre, error)
}
