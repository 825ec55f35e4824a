package membres

import (
	"context"
	"errors"
	"testing"
)

type fakeMembresRepo struct {
	membres     map[uint]*Membre
	cotisations map[uint]int
	nextID      uint
}

func newFakeMembresRepo() *fakeMembresRepo {
	return &fakeMembresRepo{
		membres:     make(map[uint]*Membre),
		cotisations: make(map[uint]int),
		nextID:      1,
	}
}

func (r *fakeMembresRepo) List(_ context.Context) ([]Membre, error) {
	items := make([]Membre, 0, len(r.membres))
	for _, membre := range r.membres {
		items = append(items, *membre)
	}
	return items, nil
}

func (r *fakeMembresRepo) GetByID(_ context.Context, id uint) (*Membre, error) {
	membre, ok := r.membres[id]
	if !ok {
		return nil, ErrMembreNotFound
	}
	copied := *membre
	return &copied, nil
}

func (r *fakeMembresRepo) Create(_ context.Context, membre *Membre) error {
	membre.ID = r.nextID
	r.nextID++
	copied := *membre
	r.membres[membre.ID] = &copied
	return nil
}

func (r *fakeMembresRepo) Update(_ context.Context, membre *Membre) error {
	if _, ok := r.membres[membre.ID]; !ok {
		return ErrMembreNotFound
	}
	copied := *membre
	r.membres[membre.ID] = &copied
	return nil
}

func (r *fakeMembresRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.membres[id]; !ok {
		return false, nil
	}
	delete(r.membres, id)
	return true, nil
}

func (r *fakeMembresRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.membres)), nil
}

func (r *fakeMembresRepo) CountByEmail(_ context.Context, email string, excludeID uint) (int64, error) {
	var count int64
	for _, membre := range r.membres {
		if membre.Email == email && membre.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMembresRepo) ListSansCotisation(_ context.Context) ([]Membre, error) {
	items := make([]Membre, 0)
	for _, membre := range r.membres {
		if r.cotisations[membre.ID] == 0 {
			items = append(items, *membre)
		}
	}
	return items, nil
}

func TestCreateMembreDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeMembresRepo())

	if _, err := svc.Create(context.Background(), CreateMembreInput{Nom: "Awa", Email: "awa@fonds.org", Poste: "Présidente"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateMembreInput{Nom: "Autre", Email: "AWA@fonds.org"})
	if !errors.Is(err, ErrEmailDejaUtilise) {
		t.Fatalf("expected ErrEmailDejaUtilise, got %v", err)
	}
}

func TestCreateMembreRequiresFields(t *testing.T) {
	svc := NewService(newFakeMembresRepo())
	if _, err := svc.Create(context.Background(), CreateMembreInput{Nom: "", Email: ""}); err == nil {
		t.Fatal("expected an error for missing fields")
	}
}

func TestSansCotisation(t *testing.T) {
	repo := newFakeMembresRepo()
	svc := NewService(repo)

	avec, err := svc.Create(context.Background(), CreateMembreInput{Nom: "Avec", Email: "avec@fonds.org"})
	if err != nil {
		t.Fatalf("create avec: %v", err)
	}
	sans, err := svc.Create(context.Background(), CreateMembreInput{Nom: "Sans", Email: "sans@fonds.org"})
	if err != nil {
		t.Fatalf("create sans: %v", err)
	}

	repo.cotisations[avec.ID] = 2

	items, err := svc.SansCotisation(context.Background())
	if err != nil {
		t.Fatalf("sans cotisation: %v", err)
	}
	if len(items) != 1 || items[0].ID != sans.ID {
		t.Fatalf("expected only membre %d, got %v", sans.ID, items)
	}
}

func TestDeleteMembreNotFound(t *testing.T) {
	svc := NewService(newFakeMembresRepo())
	if err := svc.Delete(context.Background(), 7); !errors.Is(err, ErrMembreNotFound) {
		t.Fatalf("expected ErrMembreNotFound, got %v", err)
	}
}
