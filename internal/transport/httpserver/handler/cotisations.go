package handler

import (
	"errors"
	"net/http"

	cotisationsdomain "fonds-social-go/internal/domain/cotisations"
	"github.com/go-chi/chi/v5"
)

type cotisationRequest struct {
	MembreID     uint    `json:"membre_id"`
	Montant      float64 `json:"montant"`
	Mois         string  `json:"mois"`
	DatePaiement string  `json:"date_paiement"`
}

func (h *Handlers) ListCotisations(w http.ResponseWriter, r *http.Request) {
	cotisations, err := h.Cotisations.List(r.Context())
	if err != nil {
		h.log.InternalError("cotisations.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cotisations)
}

func (h *Handlers) GetCotisation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	cotisation, err := h.Cotisations.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, cotisationsdomain.ErrCotisationNotFound) {
			writeError(w, http.StatusNotFound, "cotisation_not_found", err.Error())
			return
		}
		h.log.InternalError("cotisations.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cotisation)
}

func (h *Handlers) CreateCotisation(w http.ResponseWriter, r *http.Request) {
	var req cotisationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := h.cotisationInput(w, req)
	if !ok {
		return
	}

	cotisation, err := h.Cotisations.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, cotisationsdomain.ErrMontantTropEleve):
			h.log.BusinessError("cotisations.create: montant above ceiling", err, "membre_id", req.MembreID)
			writeError(w, http.StatusBadRequest, "montant_trop_eleve", err.Error())
		case errors.Is(err, cotisationsdomain.ErrMoisDejaRegle):
			h.log.BusinessError("cotisations.create: duplicate month", err, "membre_id", req.MembreID, "mois", req.Mois)
			writeError(w, http.StatusBadRequest, "mois_deja_regle", err.Error())
		case errors.Is(err, cotisationsdomain.ErrMoisInvalide):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("cotisations.create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, cotisation)
}

func (h *Handlers) UpdateCotisation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req cotisationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input, ok := h.cotisationInput(w, req)
	if !ok {
		return
	}

	cotisation, err := h.Cotisations.Update(r.Context(), cotisationsdomain.UpdateCotisationInput{
		ID:           id,
		MembreID:     input.MembreID,
		Montant:      input.Montant,
		Mois:         input.Mois,
		DatePaiement: input.DatePaiement,
	})
	if err != nil {
		switch {
		case errors.Is(err, cotisationsdomain.ErrCotisationNotFound):
			writeError(w, http.StatusNotFound, "cotisation_not_found", err.Error())
		case errors.Is(err, cotisationsdomain.ErrMontantTropEleve):
			writeError(w, http.StatusBadRequest, "montant_trop_eleve", err.Error())
		case errors.Is(err, cotisationsdomain.ErrMoisDejaRegle):
			writeError(w, http.StatusBadRequest, "mois_deja_regle", err.Error())
		case errors.Is(err, cotisationsdomain.ErrMoisInvalide):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("cotisations.update failed", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, cotisation)
}

func (h *Handlers) DeleteCotisation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Cotisations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, cotisationsdomain.ErrCotisationNotFound) {
			writeError(w, http.StatusNotFound, "cotisation_not_found", err.Error())
			return
		}
		h.log.InternalError("cotisations.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cotisation supprimée"})
}

func (h *Handlers) CotisationsByMembre(w http.ResponseWriter, r *http.Request) {
	membreID, err := parseIDParam(chi.URLParam(r, "membreId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid membre id")
		return
	}

	cotisations, err := h.Cotisations.ListByMembre(r.Context(), membreID)
	if err != nil {
		if errors.Is(err, cotisationsdomain.ErrCotisationNotFound) {
			writeError(w, http.StatusNotFound, "cotisation_not_found", err.Error())
			return
		}
		h.log.InternalError("cotisations.by-membre failed", err, "membre_id", membreID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cotisations)
}

func (h *Handlers) CotisationsByYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearParam(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid year")
		return
	}

	counts, err := h.Cotisations.CountByYear(r.Context(), year)
	if err != nil {
		h.log.InternalError("cotisations.by-year failed", err, "year", year)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// cotisationInput validates the shared request shape; it writes the error
// response itself and reports whether the input is usable.
func (h *Handlers) cotisationInput(w http.ResponseWriter, req cotisationRequest) (cotisationsdomain.CreateCotisationInput, bool) {
	if req.MembreID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "membre_id est requis")
		return cotisationsdomain.CreateCotisationInput{}, false
	}
	date, err := parseDateRequired(req.DatePaiement)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date_paiement invalide")
		return cotisationsdomain.CreateCotisationInput{}, false
	}
	return cotisationsdomain.CreateCotisationInput{
		MembreID:     req.MembreID,
		Montant:      req.Montant,
		Mois:         req.Mois,
		DatePaiement: date,
	}, true
}
