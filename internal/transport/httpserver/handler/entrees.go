package handler

import (
	"errors"
	"net/http"
	"strings"

	caissedomain "fonds-social-go/internal/domain/caisse"
	"github.com/go-chi/chi/v5"
)

type mouvementRequest struct {
	Motif    string  `json:"motif"`
	Montant  float64 `json:"montant"`
	Date     string  `json:"date"`
	CaisseID uint    `json:"caisse_id"`
}

// mouvementInput validates the shared entree/sortie request shape; it
// writes the error response itself and reports whether the input is
// usable.
func mouvementInput(w http.ResponseWriter, req mouvementRequest) (caissedomain.EntreeInput, bool) {
	if strings.TrimSpace(req.Motif) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "motif est requis")
		return caissedomain.EntreeInput{}, false
	}
	if req.Montant <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "montant invalide")
		return caissedomain.EntreeInput{}, false
	}
	if req.CaisseID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "caisse_id est requis")
		return caissedomain.EntreeInput{}, false
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date invalide")
		return caissedomain.EntreeInput{}, false
	}
	return caissedomain.EntreeInput{
		Motif:    req.Motif,
		Montant:  req.Montant,
		Date:     date,
		CaisseID: req.CaisseID,
	}, true
}

func (h *Handlers) ListEntrees(w http.ResponseWriter, r *http.Request) {
	entrees, err := h.Caisse.ListEntrees(r.Context())
	if err != nil {
		h.log.InternalError("entrees.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, entrees)
}

func (h *Handlers) GetEntree(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	entree, err := h.Caisse.GetEntree(r.Context(), id)
	if err != nil {
		if errors.Is(err, caissedomain.ErrEntreeNotFound) {
			writeError(w, http.StatusNotFound, "entree_not_found", err.Error())
			return
		}
		h.log.InternalError("entrees.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, entree)
}

func (h *Handlers) AddEntree(w http.ResponseWriter, r *http.Request) {
	var req mouvementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := mouvementInput(w, req)
	if !ok {
		return
	}

	entree, err := h.Caisse.AddEntree(r.Context(), input)
	if err != nil {
		if errors.Is(err, caissedomain.ErrCaisseNotFound) {
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
			return
		}
		h.log.InternalError("entrees.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, entree)
}

func (h *Handlers) UpdateEntree(w http.ResponseWriter, r *http.Request) {
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

	entree, err := h.Caisse.UpdateEntree(r.Context(), caissedomain.UpdateEntreeInput{
		ID:       id,
		Motif:    input.Motif,
		Montant:  input.Montant,
		Date:     input.Date,
		CaisseID: input.CaisseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, caissedomain.ErrEntreeNotFound):
			writeError(w, http.StatusNotFound, "entree_not_found", err.Error())
		case errors.Is(err, caissedomain.ErrCaisseNotFound):
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
		default:
			h.log.InternalError("entrees.update failed", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, entree)
}

func (h *Handlers) DeleteEntree(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Caisse.DeleteEntree(r.Context(), id); err != nil {
		if errors.Is(err, caissedomain.ErrEntreeNotFound) {
			writeError(w, http.StatusNotFound, "entree_not_found", err.Error())
			return
		}
		h.log.InternalError("entrees.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "entrée supprimée"})
}

func (h *Handlers) TotalEntrees(w http.ResponseWriter, r *http.Request) {
	total, err := h.Caisse.TotalEntrees(r.Context())
	if err != nil {
		h.log.InternalError("entrees.total failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}
