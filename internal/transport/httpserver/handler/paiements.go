package handler

import (
	"errors"
	"net/http"

	missionsdomain "fonds-social-go/internal/domain/missions"
	"github.com/go-chi/chi/v5"
)

type paiementRequest struct {
	MissionID uint    `json:"mission_id"`
	MembreID  uint    `json:"membre_id"`
	Montant   float64 `json:"montant"`
}

type updatePaiementRequest struct {
	Montant      float64 `json:"montant"`
	DatePaiement string  `json:"date_paiement"`
}

// paiementResponse echoes the payment with the localized month name of
// its mission.
type paiementResponse struct {
	missionsdomain.PaiementMission
	MoisNom string `json:"mois_nom,omitempty"`
}

type effectuerPaiementResponse struct {
	Paiement paiementResponse `json:"paiement"`
	Message  string           `json:"message"`
}

func toPaiementResponse(paiement missionsdomain.PaiementMission) paiementResponse {
	response := paiementResponse{PaiementMission: paiement}
	if paiement.Mission != nil {
		response.MoisNom = missionsdomain.NomDuMois(paiement.Mission.Mois)
	}
	return response
}

func (h *Handlers) ListPaiements(w http.ResponseWriter, r *http.Request) {
	paiements, err := h.Missions.ListPaiements(r.Context())
	if err != nil {
		h.log.InternalError("paiements.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]paiementResponse, 0, len(paiements))
	for _, paiement := range paiements {
		response = append(response, toPaiementResponse(paiement))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetPaiement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	paiement, err := h.Missions.GetPaiement(r.Context(), id)
	if err != nil {
		if errors.Is(err, missionsdomain.ErrPaiementNotFound) {
			writeError(w, http.StatusNotFound, "paiement_not_found", err.Error())
			return
		}
		h.log.InternalError("paiements.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toPaiementResponse(*paiement))
}

func (h *Handlers) EffectuerPaiement(w http.ResponseWriter, r *http.Request) {
	var req paiementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.MissionID == 0 || req.MembreID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "mission_id et membre_id sont requis")
		return
	}
	if req.Montant <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "montant invalide")
		return
	}

	result, err := h.Missions.EffectuerPaiement(r.Context(), missionsdomain.PaiementInput{
		MissionID: req.MissionID,
		MembreID:  req.MembreID,
		Montant:   req.Montant,
	})
	if err != nil {
		switch {
		case errors.Is(err, missionsdomain.ErrMissionNotFound):
			writeError(w, http.StatusNotFound, "mission_not_found", err.Error())
		case errors.Is(err, missionsdomain.ErrPaiementDejaEffectue):
			h.log.BusinessError("paiements.effectuer: already paid", err, "mission_id", req.MissionID, "membre_id", req.MembreID)
			writeError(w, http.StatusBadRequest, "paiement_deja_effectue", err.Error())
		case errors.Is(err, missionsdomain.ErrMontantSuperieurReste):
			h.log.BusinessError("paiements.effectuer: amount above remainder", err, "mission_id", req.MissionID)
			writeError(w, http.StatusBadRequest, "montant_superieur_reste", err.Error())
		default:
			h.log.InternalError("paiements.effectuer failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, effectuerPaiementResponse{
		Paiement: toPaiementResponse(result.Paiement),
		Message:  result.Message,
	})
}

func (h *Handlers) UpdatePaiement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updatePaiementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Montant <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "montant invalide")
		return
	}
	date, err := parseDateRequired(req.DatePaiement)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date_paiement invalide")
		return
	}

	paiement, err := h.Missions.UpdatePaiement(r.Context(), missionsdomain.UpdatePaiementInput{
		ID:           id,
		Montant:      req.Montant,
		DatePaiement: date,
	})
	if err != nil {
		if errors.Is(err, missionsdomain.ErrPaiementNotFound) {
			writeError(w, http.StatusNotFound, "paiement_not_found", err.Error())
			return
		}
		h.log.InternalError("paiements.update failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toPaiementResponse(*paiement))
}

func (h *Handlers) DeletePaiement(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Missions.DeletePaiement(r.Context(), id); err != nil {
		if errors.Is(err, missionsdomain.ErrPaiementNotFound) {
			writeError(w, http.StatusNotFound, "paiement_not_found", err.Error())
			return
		}
		h.log.InternalError("paiements.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "paiement supprimé"})
}
