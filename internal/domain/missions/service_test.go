package missions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeMissionsRepo struct {
	missions     map[uint]*Mission
	paiements    map[uint]*PaiementMission
	nextMission  uint
	nextPaiement uint
}

func newFakeMissionsRepo() *fakeMissionsRepo {
	return &fakeMissionsRepo{
		missions:     make(map[uint]*Mission),
		paiements:    make(map[uint]*PaiementMission),
		nextMission:  1,
		nextPaiement: 1,
	}
}

func (r *fakeMissionsRepo) Transaction(_ context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeMissionsRepo) List(_ context.Context) ([]Mission, error) {
	items := make([]Mission, 0, len(r.missions))
	for _, mission := range r.missions {
		items = append(items, *mission)
	}
	return items, nil
}

func (r *fakeMissionsRepo) GetByID(_ context.Context, id uint) (*Mission, error) {
	mission, ok := r.missions[id]
	if !ok {
		return nil, ErrMissionNotFound
	}
	copied := *mission
	return &copied, nil
}

func (r *fakeMissionsRepo) Create(_ context.Context, mission *Mission) error {
	mission.ID = r.nextMission
	r.nextMission++
	copied := *mission
	r.missions[mission.ID] = &copied
	return nil
}

func (r *fakeMissionsRepo) Update(_ context.Context, mission *Mission) error {
	if _, ok := r.missions[mission.ID]; !ok {
		return ErrMissionNotFound
	}
	copied := *mission
	r.missions[mission.ID] = &copied
	return nil
}

func (r *fakeMissionsRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.missions[id]; !ok {
		return false, nil
	}
	delete(r.missions, id)
	return true, nil
}

func (r *fakeMissionsRepo) CountByMembreAndMois(_ context.Context, membreID uint, mois time.Time, excludeID uint) (int64, error) {
	var count int64
	for _, mission := range r.missions {
		if mission.MembreID == membreID && mission.Mois.Equal(mois) && mission.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMissionsRepo) ListPaiements(_ context.Context) ([]PaiementMission, error) {
	items := make([]PaiementMission, 0, len(r.paiements))
	for _, paiement := range r.paiements {
		items = append(items, *paiement)
	}
	return items, nil
}

func (r *fakeMissionsRepo) GetPaiementByID(_ context.Context, id uint) (*PaiementMission, error) {
	paiement, ok := r.paiements[id]
	if !ok {
		return nil, ErrPaiementNotFound
	}
	copied := *paiement
	return &copied, nil
}

func (r *fakeMissionsRepo) CreatePaiement(_ context.Context, paiement *PaiementMission) error {
	paiement.ID = r.nextPaiement
	r.nextPaiement++
	copied := *paiement
	r.paiements[paiement.ID] = &copied
	return nil
}

func (r *fakeMissionsRepo) UpdatePaiement(_ context.Context, paiement *PaiementMission) error {
	if _, ok := r.paiements[paiement.ID]; !ok {
		return ErrPaiementNotFound
	}
	copied := *paiement
	r.paiements[paiement.ID] = &copied
	return nil
}

func (r *fakeMissionsRepo) DeletePaiement(_ context.Context, id uint) (bool, error) {
	if _, ok := r.paiements[id]; !ok {
		return false, nil
	}
	delete(r.paiements, id)
	return true, nil
}

func (r *fakeMissionsRepo) CountPaiementsByMissionAndMembre(_ context.Context, missionID, membreID uint) (int64, error) {
	var count int64
	for _, paiement := range r.paiements {
		if paiement.MissionID == missionID && paiement.MembreID == membreID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMissionsRepo) SumPaiementsByMission(_ context.Context, missionID uint) (float64, error) {
	var sum float64
	for _, paiement := range r.paiements {
		if paiement.MissionID == missionID {
			sum += paiement.Montant
		}
	}
	return sum, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo Repository) *Service {
	return NewService(repo).WithNow(fixedNow)
}

func TestCreateMissionNormalizesMoisAndRejectsDuplicate(t *testing.T) {
	svc := newTestService(newFakeMissionsRepo())

	created, err := svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  10000,
		Mois:     time.Date(2024, time.April, 17, 14, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !created.Mois.Equal(want) {
		t.Fatalf("expected mois normalized to %v, got %v", want, created.Mois)
	}

	_, err = svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  5000,
		Mois:     time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrMissionDejaExistante) {
		t.Fatalf("expected ErrMissionDejaExistante, got %v", err)
	}
}

func TestEffectuerPaiementPartielPuisComplet(t *testing.T) {
	repo := newFakeMissionsRepo()
	svc := newTestService(repo)

	mission, err := svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  10000,
		Mois:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	first, err := svc.EffectuerPaiement(context.Background(), PaiementInput{
		MissionID: mission.ID,
		MembreID:  2,
		Montant:   4000,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if first.Paiement.RestePayer != 6000 {
		t.Fatalf("expected reste 6000, got %v", first.Paiement.RestePayer)
	}
	if first.Message != MessagePaiementPartiel {
		t.Fatalf("expected partial message, got %q", first.Message)
	}
	if !first.Paiement.DatePaiement.Equal(fixedNow()) {
		t.Fatalf("expected payment dated with injected now, got %v", first.Paiement.DatePaiement)
	}

	second, err := svc.EffectuerPaiement(context.Background(), PaiementInput{
		MissionID: mission.ID,
		MembreID:  3,
		Montant:   6000,
	})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if second.Paiement.RestePayer != 0 {
		t.Fatalf("expected reste 0, got %v", second.Paiement.RestePayer)
	}
	if second.Message != MessagePaiementComplet {
		t.Fatalf("expected complete message, got %q", second.Message)
	}
}

func TestEffectuerPaiementRejetteDepassement(t *testing.T) {
	repo := newFakeMissionsRepo()
	svc := newTestService(repo)

	mission, err := svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  10000,
		Mois:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	if _, err := svc.EffectuerPaiement(context.Background(), PaiementInput{MissionID: mission.ID, MembreID: 2, Montant: 4000}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	_, err = svc.EffectuerPaiement(context.Background(), PaiementInput{MissionID: mission.ID, MembreID: 3, Montant: 7000})
	if !errors.Is(err, ErrMontantSuperieurReste) {
		t.Fatalf("expected ErrMontantSuperieurReste, got %v", err)
	}
}

func TestEffectuerPaiementUnSeulParMembre(t *testing.T) {
	repo := newFakeMissionsRepo()
	svc := newTestService(repo)

	mission, err := svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  10000,
		Mois:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	if _, err := svc.EffectuerPaiement(context.Background(), PaiementInput{MissionID: mission.ID, MembreID: 2, Montant: 1000}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err = svc.EffectuerPaiement(context.Background(), PaiementInput{MissionID: mission.ID, MembreID: 2, Montant: 1000})
	if !errors.Is(err, ErrPaiementDejaEffectue) {
		t.Fatalf("expected ErrPaiementDejaEffectue, got %v", err)
	}
}

func TestEffectuerPaiementMissionInconnue(t *testing.T) {
	svc := newTestService(newFakeMissionsRepo())
	_, err := svc.EffectuerPaiement(context.Background(), PaiementInput{MissionID: 99, MembreID: 1, Montant: 100})
	if !errors.Is(err, ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestNomDuMois(t *testing.T) {
	if got := NomDuMois(time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)); got != "Août" {
		t.Fatalf("expected Août, got %q", got)
	}
	if got := NomDuMois(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)); got != "Janvier" {
		t.Fatalf("expected Janvier, got %q", got)
	}
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

func TestPaiementWritesInvalidateTrends(t *testing.T) {
	repo := newFakeMissionsRepo()
	inv := &countingInvalidator{}
	svc := newTestService(repo).WithTrendsInvalidator(inv)

	mission, err := svc.Create(context.Background(), CreateMissionInput{
		MembreID: 1,
		Montant:  8000,
		Mois:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	result, err := svc.EffectuerPaiement(context.Background(), PaiementInput{
		MissionID: mission.ID,
		MembreID:  2,
		Montant:   3000,
	})
	if err != nil {
		t.Fatalf("paiement: %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("paiement should invalidate trends once, got %d", inv.calls)
	}

	if _, err := svc.UpdatePaiement(context.Background(), UpdatePaiementInput{
		ID:           result.Paiement.ID,
		Montant:      2500,
		DatePaiement: fixedNow(),
	}); err != nil {
		t.Fatalf("update paiement: %v", err)
	}
	if inv.calls != 2 {
		t.Fatalf("update should invalidate trends, got %d calls", inv.calls)
	}

	if err := svc.DeletePaiement(context.Background(), result.Paiement.ID); err != nil {
		t.Fatalf("delete paiement: %v", err)
	}
	if inv.calls != 3 {
		t.Fatalf("delete should invalidate trends, got %d calls", inv.calls)
	}

	// A rejected second payment by the same member leaves the cache alone.
	if _, err := svc.EffectuerPaiement(context.Background(), PaiementInput{
		MissionID: mission.ID,
		MembreID:  2,
		Montant:   1000,
	}); err != nil {
		t.Fatalf("paiement after delete: %v", err)
	}
	if _, err := svc.EffectuerPaiement(context.Background(), PaiementInput{
		MissionID: mission.ID,
		MembreID:  2,
		Montant:   1000,
	}); !errors.Is(err, ErrPaiementDejaEffectue) {
		t.Fatalf("expected ErrPaiementDejaEffectue, got %v", err)
	}
	if inv.calls != 4 {
		t.Fatalf("rejected paiement must not invalidate trends, got %d calls", inv.calls)
	}
}
