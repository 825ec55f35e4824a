package handler

import (
	"errors"
	"net/http"
	"strings"

	membresdomain "fonds-social-go/internal/domain/membres"
	"github.com/go-chi/chi/v5"
)

type membreRequest struct {
	Nom   string `json:"nom"`
	Email string `json:"email"`
	Poste string `json:"poste"`
}

func (h *Handlers) ListMembres(w http.ResponseWriter, r *http.Request) {
	membres, err := h.Membres.List(r.Context())
	if err != nil {
		h.log.InternalError("membres.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, membres)
}

func (h *Handlers) GetMembre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	membre, err := h.Membres.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, membresdomain.ErrMembreNotFound) {
			writeError(w, http.StatusNotFound, "membre_not_found", err.Error())
			return
		}
		h.log.InternalError("membres.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, membre)
}

func (h *Handlers) CreateMembre(w http.ResponseWriter, r *http.Request) {
	var req membreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "nom et email sont requis")
		return
	}

	membre, err := h.Membres.Create(r.Context(), membresdomain.CreateMembreInput{
		Nom:   req.Nom,
		Email: req.Email,
		Poste: req.Poste,
	})
	if err != nil {
		if errors.Is(err, membresdomain.ErrEmailDejaUtilise) {
			h.log.BusinessError("membres.create: duplicate email", err)
			writeError(w, http.StatusConflict, "email_deja_utilise", err.Error())
			return
		}
		h.log.InternalError("membres.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, membre)
}

func (h *Handlers) UpdateMembre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req membreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "nom et email sont requis")
		return
	}

	membre, err := h.Membres.Update(r.Context(), membresdomain.UpdateMembreInput{
		ID:    id,
		Nom:   req.Nom,
		Email: req.Email,
		Poste: req.Poste,
	})
	if err != nil {
		switch {
		case errors.Is(err, membresdomain.ErrMembreNotFound):
			writeError(w, http.StatusNotFound, "membre_not_found", err.Error())
		case errors.Is(err, membresdomain.ErrEmailDejaUtilise):
			writeError(w, http.StatusConflict, "email_deja_utilise", err.Error())
		default:
			h.log.InternalError("membres.update failed", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, membre)
}

func (h *Handlers) DeleteMembre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Membres.Delete(r.Context(), id); err != nil {
		if errors.Is(err, membresdomain.ErrMembreNotFound) {
			writeError(w, http.StatusNotFound, "membre_not_found", err.Error())
			return
		}
		h.log.InternalError("membres.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "membre supprimé"})
}

func (h *Handlers) CountMembres(w http.ResponseWriter, r *http.Request) {
	count, err := h.Membres.Count(r.Context())
	if err != nil {
		h.log.InternalError("membres.count failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handlers) MembresSansCotisation(w http.ResponseWriter, r *http.Request) {
	membres, err := h.Membres.SansCotisation(r.Context())
	if err != nil {
		h.log.InternalError("membres.sans-cotisation failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, membres)
}
