package rapport

import (
	"context"
	"fmt"

	"fonds-social-go/internal/domain/cotisations"
	"fonds-social-go/internal/domain/missions"
	"github.com/xuri/excelize/v2"
)

const (
	SheetCotisations = "Cotisations"
	SheetPaiements   = "Paiements Missions"
	SheetCaisse      = "Caisse"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Generate builds the three-sheet workbook. Read-only: nothing is
// mutated in the store.
func (s *Service) Generate(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.writeCotisations(ctx, f); err != nil {
		return nil, err
	}
	if err := s.writePaiements(ctx, f); err != nil {
		return nil, err
	}
	if err := s.writeCaisses(ctx, f); err != nil {
		return nil, err
	}

	// excelize seeds the workbook with "Sheet1"
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	index, err := f.GetSheetIndex(SheetCotisations)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	return f, nil
}

func (s *Service) writeCotisations(ctx context.Context, f *excelize.File) error {
	if _, err := f.NewSheet(SheetCotisations); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := writeRow(f, SheetCotisations, 1, "Membre", "Mois", "Montant", "Date de paiement", "Statut"); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetCotisations, 1, 1, header); err != nil {
		return err
	}

	lignes, err := s.repo.ListCotisations(ctx)
	if err != nil {
		return err
	}
	for i, ligne := range lignes {
		row := i + 2
		err := writeRow(f, SheetCotisations, row,
			ligne.Membre,
			ligne.Mois,
			ligne.Montant,
			ligne.DatePaiement.Format("02/01/2006"),
			cotisations.DeriveStatus(ligne.Montant),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writePaiements(ctx context.Context, f *excelize.File) error {
	if _, err := f.NewSheet(SheetPaiements); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	paye, err := fillStyle(f, "#C6EFCE")
	if err != nil {
		return err
	}
	enCours, err := fillStyle(f, "#FFC7CE")
	if err != nil {
		return err
	}

	if err := writeRow(f, SheetPaiements, 1, "Membre", "Mission", "Montant mission", "Montant payé", "Date", "Reste à payer"); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetPaiements, 1, 1, header); err != nil {
		return err
	}

	lignes, err := s.repo.ListPaiements(ctx)
	if err != nil {
		return err
	}
	for i, ligne := range lignes {
		row := i + 2
		err := writeRow(f, SheetPaiements, row,
			ligne.Membre,
			fmt.Sprintf("%s %d", missions.NomDuMois(ligne.MissionMois), ligne.MissionMois.Year()),
			ligne.MissionMontant,
			ligne.Montant,
			ligne.DatePaiement.Format("02/01/2006"),
			ligne.RestePayer,
		)
		if err != nil {
			return err
		}

		style := enCours
		if ligne.RestePayer == 0 {
			style = paye
		}
		if err := f.SetRowStyle(SheetPaiements, row, row, style); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeCaisses(ctx context.Context, f *excelize.File) error {
	if _, err := f.NewSheet(SheetCaisse); err != nil {
		return err
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	ledgers, err := s.repo.ListCaisses(ctx)
	if err != nil {
		return err
	}

	row := 1
	for _, ledger := range ledgers {
		if err := writeRow(f, SheetCaisse, row, fmt.Sprintf("Caisse %d", ledger.Caisse.ID), "", "", fmt.Sprintf("Solde: %.2f", ledger.Caisse.SoldeActuel)); err != nil {
			return err
		}
		if err := f.SetRowStyle(SheetCaisse, row, row, header); err != nil {
			return err
		}
		row++

		if err := writeRow(f, SheetCaisse, row, "Type", "Motif", "Montant", "Date"); err != nil {
			return err
		}
		row++

		var totalEntrees float64
		for _, entree := range ledger.Entrees {
			if err := writeRow(f, SheetCaisse, row, "Entrée", entree.Motif, entree.Montant, entree.Date.Format("02/01/2006")); err != nil {
				return err
			}
			totalEntrees += entree.Montant
			row++
		}
		if err := writeRow(f, SheetCaisse, row, "", "Total entrées", totalEntrees, ""); err != nil {
			return err
		}
		row++

		var totalSorties float64
		for _, sortie := range ledger.Sorties {
			if err := writeRow(f, SheetCaisse, row, "Sortie", sortie.Motif, sortie.Montant, sortie.Date.Format("02/01/2006")); err != nil {
				return err
			}
			totalSorties += sortie.Montant
			row++
		}
		if err := writeRow(f, SheetCaisse, row, "", "Total sorties", totalSorties, ""); err != nil {
			return err
		}
		row += 2
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
}
