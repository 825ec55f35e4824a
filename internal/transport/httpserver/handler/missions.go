package handler

import (
	"errors"
	"net/http"

	missionsdomain "fonds-social-go/internal/domain/missions"
	"github.com/go-chi/chi/v5"
)

type missionRequest struct {
	MembreID uint    `json:"membre_id"`
	Montant  float64 `json:"montant"`
	Mois     string  `json:"mois"`
}

// missionResponse echoes the mission with the localized month name.
type missionResponse struct {
	missionsdomain.Mission
	MoisNom string `json:"mois_nom"`
}

func toMissionResponse(mission missionsdomain.Mission) missionResponse {
	return missionResponse{
		Mission: mission,
		MoisNom: missionsdomain.NomDuMois(mission.Mois),
	}
}

func (h *Handlers) ListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.Missions.List(r.Context())
	if err != nil {
		h.log.InternalError("missions.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]missionResponse, 0, len(missions))
	for _, mission := range missions {
		response = append(response, toMissionResponse(mission))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetMission(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	mission, err := h.Missions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, missionsdomain.ErrMissionNotFound) {
			writeError(w, http.StatusNotFound, "mission_not_found", err.Error())
			return
		}
		h.log.InternalError("missions.get failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toMissionResponse(*mission))
}

func (h *Handlers) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.MembreID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "membre_id est requis")
		return
	}
	if req.Montant <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "montant invalide")
		return
	}
	mois, err := parseMonthRequired(req.Mois)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "mois invalide, format attendu YYYY-MM")
		return
	}

	mission, err := h.Missions.Create(r.Context(), missionsdomain.CreateMissionInput{
		MembreID: req.MembreID,
		Montant:  req.Montant,
		Mois:     mois,
	})
	if err != nil {
		if errors.Is(err, missionsdomain.ErrMissionDejaExistante) {
			h.log.BusinessError("missions.create: duplicate month", err, "membre_id", req.MembreID, "mois", req.Mois)
			writeError(w, http.StatusBadRequest, "mission_deja_existante", err.Error())
			return
		}
		h.log.InternalError("missions.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toMissionResponse(*mission))
}

func (h *Handlers) UpdateMission(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req missionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.MembreID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "membre_id est requis")
		return
	}
	if req.Montant <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "montant invalide")
		return
	}
	mois, err := parseMonthRequired(req.Mois)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "mois invalide, format attendu YYYY-MM")
		return
	}

	mission, err := h.Missions.Update(r.Context(), missionsdomain.UpdateMissionInput{
		ID:       id,
		MembreID: req.MembreID,
		Montant:  req.Montant,
		Mois:     mois,
	})
	if err != nil {
		switch {
		case errors.Is(err, missionsdomain.ErrMissionNotFound):
			writeError(w, http.StatusNotFound, "mission_not_found", err.Error())
		case errors.Is(err, missionsdomain.ErrMissionDejaExistante):
			writeError(w, http.StatusBadRequest, "mission_deja_existante", err.Error())
		default:
			h.log.InternalError("missions.update failed", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toMissionResponse(*mission))
}

func (h *Handlers) DeleteMission(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Missions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, missionsdomain.ErrMissionNotFound) {
			writeError(w, http.StatusNotFound, "mission_not_found", err.Error())
			return
		}
		h.log.InternalError("missions.delete failed", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "mission supprimée"})
}
