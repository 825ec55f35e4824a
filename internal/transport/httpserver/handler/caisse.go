package handler

import (
	"errors"
	"net/http"

	caissedomain "fonds-social-go/internal/domain/caisse"
	"github.com/go-chi/chi/v5"
)

type caisseRequest struct {
	SoldeActuel float64 `json:"solde_actuel"`
}

func (h *Handlers) ListCaisses(w http.ResponseWriter, r *http.Request) {
	caisses, err := h.Caisse.List(r.Context())
	if err != nil {
		h.log.InternalError("caisse.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, caisses)
}

func (h *Handlers) GetCaisse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	caisse, err := h.Caisse.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, caissedomain.ErrCaisseNotFound) {
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
			return
		}
		h.log.InternalError("caisse.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, caisse)
}

func (h *Handlers) CreateCaisse(w http.ResponseWriter, r *http.Request) {
	var req caisseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.SoldeActuel < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "solde_actuel invalide")
		return
	}

	caisse, err := h.Caisse.CreateCaisse(r.Context(), req.SoldeActuel)
	if err != nil {
		h.log.InternalError("caisse.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, caisse)
}

func (h *Handlers) UpdateCaisse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req caisseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.SoldeActuel < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "solde_actuel invalide")
		return
	}

	caisse, err := h.Caisse.UpdateCaisse(r.Context(), id, req.SoldeActuel)
	if err != nil {
		if errors.Is(err, caissedomain.ErrCaisseNotFound) {
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
			return
		}
		h.log.InternalError("caisse.update failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, caisse)
}

func (h *Handlers) DeleteCaisse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Caisse.DeleteCaisse(r.Context(), id); err != nil {
		if errors.Is(err, caissedomain.ErrCaisseNotFound) {
			writeError(w, http.StatusNotFound, "caisse_not_found", err.Error())
			return
		}
		h.log.InternalError("caisse.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "caisse supprimée"})
}

func (h *Handlers) TotalCaisses(w http.ResponseWriter, r *http.Request) {
	total, err := h.Caisse.Total(r.Context())
	if err != nil {
		h.log.InternalError("caisse.total failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}

func (h *Handlers) CaisseTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.Caisse.Trends(r.Context())
	if err != nil {
		h.log.InternalError("caisse.trends failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}
