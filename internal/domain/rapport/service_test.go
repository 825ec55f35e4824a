package rapport

import (
	"context"
	"testing"
	"time"

	caissedomain "fonds-social-go/internal/domain/caisse"
)

type fakeRapportRepo struct {
	cotisations []LigneCotisation
	paiements   []LignePaiement
	caisses     []CaisseLedger
}

func (r *fakeRapportRepo) ListCotisations(_ context.Context) ([]LigneCotisation, error) {
	return r.cotisations, nil
}

func (r *fakeRapportRepo) ListPaiements(_ context.Context) ([]LignePaiement, error) {
	return r.paiements, nil
}

func (r *fakeRapportRepo) ListCaisses(_ context.Context) ([]CaisseLedger, error) {
	return r.caisses, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateBuildsThreeSheets(t *testing.T) {
	repo := &fakeRapportRepo{
		cotisations: []LigneCotisation{
			{Membre: "Awa", Mois: "2024-02", Montant: 3000, DatePaiement: date(2024, time.February, 5)},
			{Membre: "Moussa", Mois: "2024-02", Montant: 1500, DatePaiement: date(2024, time.February, 7)},
		},
		paiements: []LignePaiement{
			{Membre: "Awa", MissionMois: date(2024, time.April, 1), MissionMontant: 10000, Montant: 10000, DatePaiement: date(2024, time.April, 20), RestePayer: 0},
			{Membre: "Moussa", MissionMois: date(2024, time.May, 1), MissionMontant: 8000, Montant: 3000, DatePaiement: date(2024, time.May, 12), RestePayer: 5000},
		},
		caisses: []CaisseLedger{
			{
				Caisse: caissedomain.CaisseSociale{ID: 1, SoldeActuel: 4200},
				Entrees: []caissedomain.SoldeEntree{
					{ID: 1, Motif: "Don", Montant: 5000, Date: date(2024, time.March, 1), CaisseID: 1},
				},
				Sorties: []caissedomain.SoldeSortie{
					{ID: 1, Motif: "Achat", Montant: 800, Date: date(2024, time.March, 9), CaisseID: 1},
				},
			},
		},
	}

	f, err := NewService(repo).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{SheetCotisations: false, SheetPaiements: false, SheetCaisse: false}
	for _, sheet := range sheets {
		if _, ok := want[sheet]; ok {
			want[sheet] = true
		}
		if sheet == "Sheet1" {
			t.Fatal("default sheet should have been removed")
		}
	}
	for sheet, found := range want {
		if !found {
			t.Fatalf("missing sheet %q", sheet)
		}
	}

	status, err := f.GetCellValue(SheetCotisations, "E2")
	if err != nil {
		t.Fatalf("read status cell: %v", err)
	}
	if status != "Paye" {
		t.Fatalf("expected Paye for montant 3000, got %q", status)
	}
	status, _ = f.GetCellValue(SheetCotisations, "E3")
	if status != "Insuffisant" {
		t.Fatalf("expected Insuffisant for montant 1500, got %q", status)
	}

	mission, err := f.GetCellValue(SheetPaiements, "B2")
	if err != nil {
		t.Fatalf("read mission cell: %v", err)
	}
	if mission != "Avril 2024" {
		t.Fatalf("expected localized mission month, got %q", mission)
	}

	entete, err := f.GetCellValue(SheetCaisse, "A1")
	if err != nil {
		t.Fatalf("read caisse header: %v", err)
	}
	if entete != "Caisse 1" {
		t.Fatalf("expected caisse header, got %q", entete)
	}
}
