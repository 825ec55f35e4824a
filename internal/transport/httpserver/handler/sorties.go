package handler

import (
	"errors"
	"net/http"

	caissedomain "fonds-social-go/internal/domain/caisse"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListSorties(w http.ResponseWriter, r *http.Request) {
	sorties, err := h.Caisse.ListSorties(r.Context())
	if err != nil {
		h.log.InternalError("sorties.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sorties)
}

func (h *Handlers) GetSortie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	sortie, err := h.Caisse.GetSortie(r.Context(), id)
	if err != nil {
		if errors.Is(err, caissedomain.ErrSortieNotFound) {
			writeError(w, http.StatusNotFound, "sortie_not_found", err.Error())
			return
		}
		h.log.InternalError("sorties.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sortie)
}

func (h *Handlers) CreateSortie(w http.ResponseWriter, r *http.Request) {
	var req mouvementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := mouvementInput(w, req)
	if !ok {
		return
	}

	sortie, err := h.Caisse.CreateSortie(r.Context(), caissedomain.SortieInput{
		Motif:    input.Motif,
		Montant:  input.Montant,
		Date:     input.Date,
		CaisseID: input.CaisseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, caissedomain.ErrCaisseNotFound):
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
		case errors.Is(err, caissedomain.ErrSoldeInsuffisant):
			h.log.BusinessError("sorties.create: insufficient balance", err, "caisse_id", req.CaisseID, "montant", req.Montant)
			writeError(w, http.StatusBadRequest, "solde_insuffisant", err.Error())
		default:
			h.log.InternalError("sorties.create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, sortie)
}

func (h *Handlers) UpdateSortie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req mouvementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := mouvementInput(w, req)
	if !ok {
		return
	}

	sortie, err := h.Caisse.UpdateSortie(r.Context(), caissedomain.UpdateSortieInput{
		ID:       id,
		Motif:    input.Motif,
		Montant:  input.Montant,
		Date:     input.Date,
		CaisseID: input.CaisseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, caissedomain.ErrSortieNotFound):
			writeError(w, http.StatusNotFound, "sortie_not_found", err.Error())
		case errors.Is(err, caissedomain.ErrCaisseNotFound):
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
		case errors.Is(err, caissedomain.ErrSoldeInsuffisant):
			writeError(w, http.StatusBadRequest, "solde_insuffisant", err.Error())
		default:
			h.log.InternalError("sorties.update failed", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, sortie)
}

func (h *Handlers) DeleteSortie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Caisse.DeleteSortie(r.Context(), id); err != nil {
		if errors.Is(err, caissedomain.ErrSortieNotFound) {
			writeError(w, http.StatusNotFound, "sortie_not_found", err.Error())
			return
		}
		h.log.InternalError("sorties.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "sortie supprimée"})
}

func (h *Handlers) TotalSorties(w http.ResponseWriter, r *http.Request) {
	total, err := h.Caisse.TotalSorties(r.Context())
	if err != nil {
		h.log.InternalError("sorties.total failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}
