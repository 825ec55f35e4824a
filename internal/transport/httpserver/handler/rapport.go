package handler

import (
	"net/http"

	rapportdomain "fonds-social-go/internal/domain/rapport"
)

func (h *Handlers) DownloadRapport(w http.ResponseWriter, r *http.Request) {
	f, err := h.Rapport.Generate(r.Context())
	if err != nil {
		h.log.InternalError("rapport.generate failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rapportdomain.NomFichier+`"`)
	if err := f.Write(w); err != nil {
		h.log.InternalError("rapport.write failed", err)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
